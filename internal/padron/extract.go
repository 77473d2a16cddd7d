package padron

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/padronws/go-cuit-backend/internal/domain"
)

// ErrMalformedXML is returned by ExtractPersona when the response body
// cannot be parsed as an XML document.
var ErrMalformedXML = errors.New("padron: response is not well-formed XML")

// ExtractPersona pulls the six taxpayer fields out of a padrón A5 response.
//
// Each field is looked up independently by local element name, anywhere in
// the document and regardless of namespace prefix; the first match wins.
// A missing or empty element is substituted with domain.ValorDesconocido —
// absence is normal and never an error. The only failure mode is a body
// that is not well-formed XML.
func ExtractPersona(body []byte) (domain.Persona, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return domain.Persona{}, ErrMalformedXML
	}
	root := doc.Root()
	if root == nil {
		return domain.Persona{}, ErrMalformedXML
	}

	p := domain.DefaultPersona()
	assign(root, "nombre", &p.Nombre)
	assign(root, "apellido", &p.Apellido)
	assign(root, "direccion", &p.Direccion)
	assign(root, "tipoPersona", &p.TipoPersona)
	assign(root, "estadoClave", &p.EstadoClave)
	assign(root, "descripcionProvincia", &p.DescripcionProvincia)
	return p, nil
}

// assign overwrites *dst with the text of the first element named tag, if
// such an element exists and carries non-blank text.
func assign(root *etree.Element, tag string, dst *string) {
	el := firstByLocalName(root, tag)
	if el == nil {
		return
	}
	if text := strings.TrimSpace(el.Text()); text != "" {
		*dst = text
	}
}

// firstByLocalName walks the tree depth-first and returns the first element
// whose local name (prefix stripped) equals tag, or nil when none matches.
func firstByLocalName(el *etree.Element, tag string) *etree.Element {
	if el.Tag == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := firstByLocalName(child, tag); found != nil {
			return found
		}
	}
	return nil
}
