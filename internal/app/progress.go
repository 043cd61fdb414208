package app

import "github.com/mmrzaf/jsonfixture/internal/logging"

// LogProgress logs every tenth of the total and the final document.
type LogProgress struct {
	logger *logging.Logger
	next   int
}

func NewLogProgress(logger *logging.Logger) *LogProgress {
	return &LogProgress{logger: logger.WithComponent("progress")}
}

func (p *LogProgress) Step(done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total
	if pct < p.next && done != total {
		return
	}
	p.logger.Infow("progress", map[string]any{"done": done, "total": total, "percent": pct})
	p.next = pct/10*10 + 10
}
