package clusteringcriteriarepo

// ClusteringCriterion names one way of clustering stocks, for example
// "profitability" or "valuation".
type ClusteringCriterion struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// CreateClusteringCriterion contains fields for creating a new criterion.
type CreateClusteringCriterion struct {
	Name string
}

// UpdateClusteringCriterion contains fields for updating a criterion.
type UpdateClusteringCriterion struct {
	Name *string
}
