package processor

// BuildStatistics summarizes a run. It returns empty statistics when the
// analysis is missing or no page survived the resize stage.
func BuildStatistics(analysis *Analysis, pages []ResizedPage) Statistics {
	if analysis == nil || len(pages) == 0 {
		return Statistics{}
	}

	return Statistics{
		TotalPages:        analysis.TotalPages,
		TargetWidth:       analysis.TargetWidth,
		PagesResized:      analysis.PagesToResize,
		PagesUnchanged:    analysis.TotalPages - analysis.PagesToResize,
		WidthDistribution: analysis.WidthDistribution,
		ProcessSuccess:    len(pages) == analysis.TotalPages,
		present:           true,
	}
}
