package parser

// DocumentStats contains statistical information about a decoded document
type DocumentStats struct {
	PathCount           int // Number of paths defined
	OperationCount      int // Total number of operations across all paths
	SchemaCount         int // Number of component schemas
	SecuritySchemeCount int // Number of component security schemes
}

// GetDocumentStats returns statistics for a decoded document
func GetDocumentStats(doc *Document) DocumentStats {
	stats := DocumentStats{}
	if doc == nil {
		return stats
	}

	stats.PathCount = len(doc.Paths)
	for _, item := range doc.Paths {
		stats.OperationCount += len(item.Operations())
	}
	if doc.Components != nil {
		stats.SchemaCount = len(doc.Components.Schemas)
		stats.SecuritySchemeCount = len(doc.Components.SecuritySchemes)
	}
	return stats
}
