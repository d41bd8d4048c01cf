package aipage

import "context"

// Source languages sent with each page source part.
const (
	LanguageHTML       = "html"
	LanguageCSS        = "css"
	LanguageJavaScript = "javascript"
)

// PageKey addresses a page in the storage service.
type PageKey struct {
	ApplicationID string `json:"applicationId"`
	TemplateID    string `json:"templateId"`
	Route         string `json:"route"`
}

// Validate returns an error if any part of the key is missing.
func (k *PageKey) Validate() error {
	if k.ApplicationID == "" {
		return Errorf(EINVALID, "application ID required")
	}
	if k.TemplateID == "" {
		return Errorf(EINVALID, "template ID required")
	}
	if k.Route == "" {
		return Errorf(EINVALID, "route required")
	}
	return nil
}

// SourceFile is one part of a page source payload.
type SourceFile struct {
	Source   string `json:"source"`
	Language string `json:"language"`
	Persist  bool   `json:"persist"`
}

// Settings holds page-level settings.
type Settings struct {
	Title   string `json:"title"`
	Persist bool   `json:"persist"`
}

// SourcePayload is the full source of a page. Parts whose Persist flag is
// false are left untouched by the storage service.
type SourcePayload struct {
	Page     SourceFile `json:"page"`
	Style    SourceFile `json:"style"`
	Script   SourceFile `json:"script"`
	Settings Settings   `json:"settings"`
}

// SaveRequest asks the storage service to create or overwrite a page source.
type SaveRequest struct {
	Key     PageKey       `json:"key"`
	Payload SourcePayload `json:"payload"`
}

// CompileRequest asks the compilation service to render a saved page.
type CompileRequest struct {
	Key          PageKey `json:"key"`
	ServerRender bool    `json:"serverRender"`
}

// PageService is the page storage and compilation collaborator.
type PageService interface {
	// SavePageSource creates the page source or fully overwrites it.
	SavePageSource(ctx context.Context, req *SaveRequest) error

	// CompilePage renders a previously saved page.
	// Returns ENOTFOUND if no source was saved for the key.
	CompilePage(ctx context.Context, req *CompileRequest) error
}
