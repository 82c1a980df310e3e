package greeting

// GetOutput is the raw text response of the greeting route.
type GetOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
