package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// guideMarkdown is the methodology text shown above the calculator. It
// documents the fixed assumptions so users know what the numbers mean.
const guideMarkdown = `
Statistical power measures the likelihood of detecting a true effect when it
exists. An underpowered evaluation can sit on top of a real improvement and
still fail to detect it, so study design and sample size deserve attention
before any data is collected.

This calculator answers two questions for a teacher-level intervention with
student-level outcomes:

1. What power does a given number of teachers achieve?
2. How many teachers are needed for adequate (80%) power at a target effect size?

To keep the calculations straightforward it assumes:

- Conventional significance (0.05) and power (0.80) levels
- Equal-sized intervention and comparison groups
- Two-sided tests with equal variance between groups
- 22 students per teacher by default

**Clustering.** Outcomes are measured on students, but treatment is assigned
to teachers. Students who share a classroom resemble each other, which the
intraclass correlation coefficient (ICC) captures. A higher ICC means more
similarity within classrooms, a larger design effect, and a smaller effective
sample, so power drops (or required sample size grows) as the ICC rises.

**Effect sizes.** Kraft (2019), summarizing nearly 2,000 effect sizes from
education interventions, suggests these bands:

- Small effect: below 0.05
- Medium effect: 0.05 to just under 0.20
- Large effect: 0.20 and above

Reference: Kraft, M. A. (2019). *Interpreting Effect Sizes of Education
Interventions.* EdWorkingPaper 19-10, Annenberg Institute at Brown University.
`

// renderGuide converts the methodology markdown to HTML once at startup.
func renderGuide() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML([]byte(guideMarkdown), p, renderer)
	return template.HTML(out)
}
