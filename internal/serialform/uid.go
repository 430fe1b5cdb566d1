package serialform

import (
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/resources"
)

// SerialUIDInfoHeader returns an empty name/value list for serial UIDs.
func (w *Writer) SerialUIDInfoHeader() *doctree.Node {
	return doctree.Styled(doctree.RoleDefinitionList, doctree.StyleNameValue)
}

// SerialUIDLabel returns the localized "serialVersionUID:" label.
func (w *Writer) SerialUIDLabel() (string, error) {
	return w.opts.Messages.Text(resources.KeySerialVersionUID)
}

// AddSerialUID appends one label/value pair to block. Pairs keep call order
// and are never merged.
func (w *Writer) AddSerialUID(block *doctree.Node, label, uid string) {
	block.Append(
		doctree.New(doctree.RoleTerm).AppendText(label),
		doctree.New(doctree.RoleDefinition).AppendText(uid),
	)
}
