package sarif

// AssembleLog combines a rule catalog, results and run metadata into a log
// with a single run. Nil slices are replaced with empty ones so the log
// always serialises with arrays.
func AssembleLog(rules []*Rule, results []*Result, tool Tool, invocations []*Invocation, files map[string]*File) *Log {
	if rules == nil {
		rules = []*Rule{}
	}
	if results == nil {
		results = []*Result{}
	}
	if invocations == nil {
		invocations = []*Invocation{}
	}

	return &Log{
		Version: Version200,
		Schema:  Schema200,
		Runs: []*Run{
			{
				Tool:        tool,
				Invocations: invocations,
				Files:       files,
				Results:     results,
				Resources:   &Resources{Rules: rules},
			},
		},
	}
}
