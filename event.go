// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// EventKind is the kind of a parse event.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	NoEvent      EventKind = iota // invalid event
	PropertyName                  // object member key
	StartObject                   // left brace "{"
	EndObject                     // right brace "}"
	StartArray                    // left square bracket "["
	EndArray                      // right square bracket "]"
	Value                         // scalar value
)

var eventStr = [...]string{
	NoEvent:      "NoEvent",
	PropertyName: "PropertyName",
	StartObject:  "StartObject",
	EndObject:    "EndObject",
	StartArray:   "StartArray",
	EndArray:     "EndArray",
	Value:        "Value",
}

func (k EventKind) String() string {
	if int(k) >= len(eventStr) {
		return eventStr[NoEvent]
	}
	return eventStr[k]
}

// ValueType is the type tag of a Value event.
type ValueType byte

// Constants defining the valid ValueType values.
const (
	NoType  ValueType = iota // not a value
	Integer                  // number without fraction or exponent
	Float                    // number with fraction and/or exponent
	String                   // string
	Boolean                  // true or false
	Date                     // timestamp
	Bytes                    // binary blob (base64 text)
	Null                     // null
)

var typeStr = [...]string{
	NoType:  "none",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Boolean: "boolean",
	Date:    "date",
	Bytes:   "bytes",
	Null:    "null",
}

func (t ValueType) String() string {
	if int(t) >= len(typeStr) {
		return typeStr[NoType]
	}
	return typeStr[t]
}

// An Event is a single step in the structure of a document.
type Event struct {
	Kind EventKind
	Type ValueType // for Value events only
	Text string
}

// IsStart reports whether e begins a container.
func (e Event) IsStart() bool { return e.Kind == StartObject || e.Kind == StartArray }

// IsEnd reports whether e ends a container.
func (e Event) IsEnd() bool { return e.Kind == EndObject || e.Kind == EndArray }

func (e Event) String() string {
	switch e.Kind {
	case Value:
		return fmt.Sprintf("Value %s <%s>", e.Type, e.Text)
	case PropertyName:
		return fmt.Sprintf("PropertyName <%s>", e.Text)
	default:
		return e.Kind.String()
	}
}

// A Reader delivers parse events from a document. Next returns io.EOF after
// the last event; any other error reports a read or syntax failure.
type Reader interface {
	Next() (Event, error)
}
