package presenter

// ErrorSummaryItem links the error summary to a field
type ErrorSummaryItem struct {
	Text string
	Href string
}

// FieldErrors holds the inline and summary messages for a form
type FieldErrors struct {
	messages map[string]string
	Summary  []ErrorSummaryItem
}

// FlashKey is the flash message key holding a field's error
func FlashKey(field string) string {
	return field + "Error"
}

// NewFieldErrors collects the error for each field using lookup, which is
// normally a one-shot flash read
func NewFieldErrors(lookup func(key string) string, fields ...string) FieldErrors {
	errs := FieldErrors{messages: make(map[string]string)}
	for _, field := range fields {
		msg := lookup(FlashKey(field))
		if msg == "" {
			continue
		}
		errs.messages[field] = msg
		errs.Summary = append(errs.Summary, ErrorSummaryItem{Text: msg, Href: "#" + field})
	}
	return errs
}

// Message returns the error for field, or ""
func (f FieldErrors) Message(field string) string {
	return f.messages[field]
}

// Any reports whether any field has an error
func (f FieldErrors) Any() bool {
	return len(f.Summary) > 0
}
