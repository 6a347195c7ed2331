package clusteringresultsrepobridge

import "github.com/jrazmi/stockdata/core/repositories/clusteringresultsrepo"

// ClusteringResult is the API representation of a clustering result.
type ClusteringResult struct {
	ID          int64 `json:"id"`
	ClusterID   int   `json:"clusterId"`
	CriterionID int64 `json:"criterionId"`
	StockID     int64 `json:"stockId"`
}

// CreateClusteringResultInput is the body of both create and assign.
type CreateClusteringResultInput struct {
	StockID     int64 `json:"stockId"`
	CriterionID int64 `json:"criterionId"`
	ClusterID   int   `json:"clusterId"`
}

type UpdateClusteringResultInput struct {
	ClusterID *int `json:"clusterId"`
}

func toBridge(r clusteringresultsrepo.ClusteringResult) ClusteringResult {
	return ClusteringResult{
		ID:          r.ID,
		ClusterID:   r.ClusterID,
		CriterionID: r.CriterionID,
		StockID:     r.StockID,
	}
}

func toBridgeList(results []clusteringresultsrepo.ClusteringResult) []ClusteringResult {
	out := make([]ClusteringResult, len(results))
	for i, r := range results {
		out[i] = toBridge(r)
	}
	return out
}

func (in CreateClusteringResultInput) toRepository() clusteringresultsrepo.CreateClusteringResult {
	return clusteringresultsrepo.CreateClusteringResult{
		StockID:     in.StockID,
		CriterionID: in.CriterionID,
		ClusterID:   in.ClusterID,
	}
}
