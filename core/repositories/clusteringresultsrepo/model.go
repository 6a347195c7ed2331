package clusteringresultsrepo

// ClusteringResult places one stock into a cluster under one criterion.
// A stock has at most one result per criterion.
type ClusteringResult struct {
	ID          int64 `db:"id"`
	ClusterID   int   `db:"cluster_id"`
	CriterionID int64 `db:"criterion_id"`
	StockID     int64 `db:"stock_id"`
}

// CreateClusteringResult contains fields for creating a new result.
type CreateClusteringResult struct {
	StockID     int64
	CriterionID int64
	ClusterID   int
}

// UpdateClusteringResult moves a result to another cluster.
type UpdateClusteringResult struct {
	ClusterID *int
}
