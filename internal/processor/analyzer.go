package processor

// AnalyzeWidths measures every page and picks the most common width.
// Pages whose header cannot be read are logged and skipped.
func (p *Processor) AnalyzeWidths(images []string) (Analysis, error) {
	total := len(images)
	p.log.Logf("Analyzing %d pages...", total)

	hist := NewWidthHistogram()
	var widths []int
	failed := 0
	for i, payload := range images {
		width, pageErr := measurePage(payload)
		if pageErr != nil {
			failed++
			p.log.Logf("Error analyzing page %d: %v", i+1, pageErr)
		} else {
			widths = append(widths, width)
			hist.Add(width)
			if (i+1)%analyzeLogEvery == 0 {
				p.log.Logf("Analyzed %d/%d pages", i+1, total)
			}
		}
		p.report(StageAnalyze, i+1, total, failed)
	}

	target, ok := hist.Mode()
	if !ok {
		p.log.Logf("ERROR: no page could be analyzed")
		return Analysis{}, ErrNoAnalyzableImages
	}

	toResize := 0
	for _, w := range widths {
		if w != target {
			toResize++
		}
	}

	p.log.Logf("Widths found: %s", hist)
	p.log.Logf("Target width selected: %dpx", target)

	return Analysis{
		TargetWidth:       target,
		WidthDistribution: hist,
		TotalPages:        len(widths),
		PagesToResize:     toResize,
	}, nil
}

func measurePage(payload string) (width int, err error) {
	defer recoverPage(&err)

	raw, err := decodePayload(payload)
	if err != nil {
		return 0, err
	}
	cfg, _, err := readDimensions(raw)
	if err != nil {
		return 0, err
	}
	return cfg.Width, nil
}
