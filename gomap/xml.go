package gomap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// The Xml tag carries an XML document or element as text; both
// directions only check well-formedness, the document is otherwise
// opaque to the codec.

func toXml(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		d, err := xml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cannot represent %T as Xml: %w", v, err)
		}
		return string(d), nil
	}
	if err := checkXML(s); err != nil {
		return "", err
	}
	return s, nil
}

func fromXml(s string) (any, error) {
	if err := checkXML(s); err != nil {
		return nil, err
	}
	return s, nil
}

func checkXML(s string) error {
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed xml: %w", err)
		}
	}
}
