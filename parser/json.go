package parser

import (
	"encoding/json"

	"github.com/shigou0206/stepflow-test/parser/internal/jsonhelpers"
)

// encoding/json has no inline map support, so every object that carries
// specification extensions flattens Extra on the way out and collects
// x-* keys on the way in.

// MarshalJSON flattens Extra into the Document object.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document
	return jsonhelpers.MarshalWithExtras((*alias)(d), d.Extra)
}

// UnmarshalJSON captures x-* fields of the Document object in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	if err := json.Unmarshal(data, (*alias)(d)); err != nil {
		return err
	}
	d.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Components object.
func (c *Components) MarshalJSON() ([]byte, error) {
	type alias Components
	return jsonhelpers.MarshalWithExtras((*alias)(c), c.Extra)
}

// UnmarshalJSON captures x-* fields of the Components object in Extra.
func (c *Components) UnmarshalJSON(data []byte) error {
	type alias Components
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	c.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Info object.
func (i *Info) MarshalJSON() ([]byte, error) {
	type alias Info
	return jsonhelpers.MarshalWithExtras((*alias)(i), i.Extra)
}

// UnmarshalJSON captures x-* fields of the Info object in Extra.
func (i *Info) UnmarshalJSON(data []byte) error {
	type alias Info
	if err := json.Unmarshal(data, (*alias)(i)); err != nil {
		return err
	}
	i.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Tag object.
func (t *Tag) MarshalJSON() ([]byte, error) {
	type alias Tag
	return jsonhelpers.MarshalWithExtras((*alias)(t), t.Extra)
}

// UnmarshalJSON captures x-* fields of the Tag object in Extra.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type alias Tag
	if err := json.Unmarshal(data, (*alias)(t)); err != nil {
		return err
	}
	t.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Server object.
func (s *Server) MarshalJSON() ([]byte, error) {
	type alias Server
	return jsonhelpers.MarshalWithExtras((*alias)(s), s.Extra)
}

// UnmarshalJSON captures x-* fields of the Server object in Extra.
func (s *Server) UnmarshalJSON(data []byte) error {
	type alias Server
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return err
	}
	s.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the PathItem object.
func (p *PathItem) MarshalJSON() ([]byte, error) {
	type alias PathItem
	return jsonhelpers.MarshalWithExtras((*alias)(p), p.Extra)
}

// UnmarshalJSON captures x-* fields of the PathItem object in Extra.
func (p *PathItem) UnmarshalJSON(data []byte) error {
	type alias PathItem
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	p.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Operation object.
func (o *Operation) MarshalJSON() ([]byte, error) {
	type alias Operation
	return jsonhelpers.MarshalWithExtras((*alias)(o), o.Extra)
}

// UnmarshalJSON captures x-* fields of the Operation object in Extra.
func (o *Operation) UnmarshalJSON(data []byte) error {
	type alias Operation
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return err
	}
	o.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Response object.
func (r *Response) MarshalJSON() ([]byte, error) {
	type alias Response
	return jsonhelpers.MarshalWithExtras((*alias)(r), r.Extra)
}

// UnmarshalJSON captures x-* fields of the Response object in Extra.
func (r *Response) UnmarshalJSON(data []byte) error {
	type alias Response
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}
	r.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the MediaType object.
func (m *MediaType) MarshalJSON() ([]byte, error) {
	type alias MediaType
	return jsonhelpers.MarshalWithExtras((*alias)(m), m.Extra)
}

// UnmarshalJSON captures x-* fields of the MediaType object in Extra.
func (m *MediaType) UnmarshalJSON(data []byte) error {
	type alias MediaType
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return err
	}
	m.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Parameter object.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	type alias Parameter
	return jsonhelpers.MarshalWithExtras((*alias)(p), p.Extra)
}

// UnmarshalJSON captures x-* fields of the Parameter object in Extra.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	type alias Parameter
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	p.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the RequestBody object.
func (rb *RequestBody) MarshalJSON() ([]byte, error) {
	type alias RequestBody
	return jsonhelpers.MarshalWithExtras((*alias)(rb), rb.Extra)
}

// UnmarshalJSON captures x-* fields of the RequestBody object in Extra.
func (rb *RequestBody) UnmarshalJSON(data []byte) error {
	type alias RequestBody
	if err := json.Unmarshal(data, (*alias)(rb)); err != nil {
		return err
	}
	rb.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the Schema object.
func (s *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	return jsonhelpers.MarshalWithExtras((*alias)(s), s.Extra)
}

// UnmarshalJSON captures x-* fields of the Schema object in Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type alias Schema
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return err
	}
	s.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}

// MarshalJSON flattens Extra into the SecurityScheme object.
func (ss *SecurityScheme) MarshalJSON() ([]byte, error) {
	type alias SecurityScheme
	return jsonhelpers.MarshalWithExtras((*alias)(ss), ss.Extra)
}

// UnmarshalJSON captures x-* fields of the SecurityScheme object in Extra.
func (ss *SecurityScheme) UnmarshalJSON(data []byte) error {
	type alias SecurityScheme
	if err := json.Unmarshal(data, (*alias)(ss)); err != nil {
		return err
	}
	ss.Extra = jsonhelpers.ExtractExtensions(data)
	return nil
}
