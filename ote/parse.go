package ote

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Marker text of the upstream outage page, served as HTML instead of XML
// when the portal is down.
const unavailableMarker = "Application is not available"

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

type rawItem struct {
	Date   string `xml:"Date"`
	Hour   string `xml:"Hour"`
	Price  string `xml:"Price"`
	Volume string `xml:"Volume"`
}

type document struct {
	fault *soapFault
	items []rawItem
}

// parseResponse walks the response and collects the SOAP Fault element (if
// any) and every Item element. Matching is by element name so it holds
// regardless of how the service binds its namespaces. The presence of a
// Fault element counts as a fault even when it has no children.
func parseResponse(text string) (*document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	doc := &document{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyParseError(text, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "Fault":
			fault := &soapFault{}
			if err := dec.DecodeElement(fault, &se); err != nil {
				return nil, classifyParseError(text, err)
			}
			doc.fault = fault
		case "Item":
			var item rawItem
			if err := dec.DecodeElement(&item, &se); err != nil {
				return nil, classifyParseError(text, err)
			}
			doc.items = append(doc.items, item)
		}
	}

	return doc, nil
}

func classifyParseError(text string, err error) error {
	if strings.Contains(text, unavailableMarker) {
		return ErrServiceUnavailable
	}
	return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
}
