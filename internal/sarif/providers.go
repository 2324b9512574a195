package sarif

// EnvironmentData describes the scanned page and when it was scanned.
type EnvironmentData struct {
	Timestamp       string
	TargetPageURL   string
	TargetPageTitle string
}

// ToolPropertyProvider returns the tool metadata of a run.
type ToolPropertyProvider func() Tool

// InvocationProvider turns environment data into the invocations of a run.
type InvocationProvider func(EnvironmentData) []*Invocation

// TaxonomyReferenceProvider identifies the taxonomy rule relationships point to.
type TaxonomyReferenceProvider func() ToolComponentReference

const (
	axeToolName        = "axe"
	axeToolFullName    = "axe-core"
	axeToolVersion     = "3.2.2"
	axeToolDownloadURI = "https://www.deque.com/axe/"
)

// AxeToolProperties is the default ToolPropertyProvider.
func AxeToolProperties() Tool {
	return Tool{
		Name:            axeToolName,
		FullName:        axeToolFullName,
		SemanticVersion: axeToolVersion,
		Version:         axeToolVersion,
		Properties: Properties{
			"downloadUri": axeToolDownloadURI,
		},
	}
}

// ToolPropertiesWith returns a provider that overrides the name and version
// of the default axe tool properties. Empty values keep the defaults.
func ToolPropertiesWith(name, version string) ToolPropertyProvider {
	return func() Tool {
		tool := AxeToolProperties()
		if name != "" {
			tool.Name = name
		}
		if version != "" {
			tool.Version = version
			tool.SemanticVersion = version
		}
		return tool
	}
}

// Invocations is the default InvocationProvider: a single invocation that
// starts and ends at the scan timestamp. Both are omitted when the timestamp
// is unknown.
func Invocations(env EnvironmentData) []*Invocation {
	return []*Invocation{
		{
			StartTime: env.Timestamp,
			EndTime:   env.Timestamp,
		},
	}
}

// targetFiles describes the scanned page, keyed by its URL.
func targetFiles(env EnvironmentData) map[string]*File {
	if env.TargetPageURL == "" {
		return nil
	}
	properties := Properties{"tags": []string{"target"}}
	if env.TargetPageTitle != "" {
		properties["title"] = env.TargetPageTitle
	}
	return map[string]*File{
		env.TargetPageURL: {
			MimeType:   "text/html",
			Properties: properties,
		},
	}
}
