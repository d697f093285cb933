package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlNode is a lightweight WordprocessingML element tree. Nodes are built
// with prefixed names ("w:p") and serialized through encoding/xml so text
// content is always escaped structurally.
type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

func wEl(local string, children ...*xmlNode) *xmlNode {
	return &xmlNode{Name: xml.Name{Local: "w:" + local}, Children: children}
}

func wElAttr(local string, attrs map[string]string, children ...*xmlNode) *xmlNode {
	node := wEl(local, children...)
	for name, value := range attrs {
		node.Attr = append(node.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	}
	return node
}

func wVal(local, value string) *xmlNode {
	return wElAttr(local, map[string]string{"w:val": value})
}

func textEl(text string) *xmlNode {
	node := wElAttr("t", map[string]string{"xml:space": "preserve"})
	node.Children = append(node.Children, &xmlNode{IsText: true, Text: text})
	return node
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: node.Name, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}

func encodeXMLFragment(nodes []*xmlNode) (string, error) {
	var buf bytes.Buffer
	encoder := xml.NewEncoder(&buf)
	for _, node := range nodes {
		if err := encodeXMLNode(encoder, node); err != nil {
			return "", err
		}
	}
	if err := encoder.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func walkXML(node *xmlNode, visit func(*xmlNode) bool) bool {
	if node == nil {
		return true
	}
	if !visit(node) {
		return false
	}
	for _, child := range node.Children {
		if !walkXML(child, visit) {
			return false
		}
	}
	return true
}

func isElement(node *xmlNode, local string) bool {
	return node != nil && !node.IsText && node.Name.Local == "w:"+local
}

func nodeText(node *xmlNode) string {
	var b strings.Builder
	walkXML(node, func(n *xmlNode) bool {
		if n.IsText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

// validateBodyStructure rejects trees Word refuses to open: nested
// paragraphs and runs that carry properties after their text.
func validateBodyStructure(body *xmlNode) error {
	var failure error
	var paragraphDepth int

	var walk func(node *xmlNode)
	walk = func(node *xmlNode) {
		if failure != nil || node == nil || node.IsText {
			return
		}
		if isElement(node, "p") {
			if paragraphDepth > 0 {
				failure = fmt.Errorf("document body has nested w:p")
				return
			}
			paragraphDepth++
			defer func() { paragraphDepth-- }()
		}
		if isElement(node, "r") {
			seenText := false
			for _, child := range node.Children {
				if isElement(child, "t") {
					seenText = true
				}
				if isElement(child, "rPr") && seenText {
					failure = fmt.Errorf("document body has w:rPr after w:t in a run")
					return
				}
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(body)
	return failure
}
