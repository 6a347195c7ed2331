package clusteringcriteriarepobridge

import "github.com/jrazmi/stockdata/core/repositories/clusteringcriteriarepo"

// ClusteringCriterion is the API representation of a criterion.
type ClusteringCriterion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateClusteringCriterionInput struct {
	Name string `json:"name"`
}

type UpdateClusteringCriterionInput struct {
	Name *string `json:"name"`
}

func toBridge(c clusteringcriteriarepo.ClusteringCriterion) ClusteringCriterion {
	return ClusteringCriterion{ID: c.ID, Name: c.Name}
}

func toBridgeList(criteria []clusteringcriteriarepo.ClusteringCriterion) []ClusteringCriterion {
	out := make([]ClusteringCriterion, len(criteria))
	for i, c := range criteria {
		out[i] = toBridge(c)
	}
	return out
}
