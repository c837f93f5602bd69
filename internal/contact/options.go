package contact

// Option is one entry of a select control on the contact form.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options holds the configured enumerations for select-backed fields.
type Options struct {
	ProjectTypes []Option `json:"projectTypes"`
	Timelines    []Option `json:"timelines"`
	Budgets      []Option `json:"budgets"`
}

// DefaultOptions returns the enumerations the site ships with.
func DefaultOptions() Options {
	return Options{
		ProjectTypes: []Option{
			{Value: "website", Label: "Website"},
			{Value: "web-application", Label: "Web Application"},
			{Value: "ai-system", Label: "AI System"},
			{Value: "other", Label: "Something else"},
		},
		Timelines: []Option{
			{Value: "asap", Label: "ASAP"},
			{Value: "1-3-months", Label: "1-3 months"},
			{Value: "exploring", Label: "Just exploring"},
		},
		Budgets: []Option{
			{Value: "10k-25k", Label: "$10k - $25k"},
			{Value: "25k-50k", Label: "$25k - $50k"},
			{Value: "50k-plus", Label: "$50k+"},
			{Value: "not-sure", Label: "Not sure yet"},
		},
	}
}

// Values returns the raw option values.
func Values(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}
