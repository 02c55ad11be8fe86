// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdoc reads JSON documents as a flat sequence of parse events.
//
// # Events
//
// An Event reports one step of the structure of a document. The kinds of
// event correspond to the syntax of JSON values:
//
//	Event kind    | Text                        | Description
//	------------- | --------------------------- | ---------------------------
//	PropertyName  | decoded key                 | "key": (object member)
//	StartObject   | "{"                         | begin an object
//	EndObject     | "}"                         | end the innermost object
//	StartArray    | "["                         | begin an array
//	EndArray      | "]"                         | end the innermost array
//	Value         | decoded string or literal   | a scalar, tagged by Type
//
// # Readers
//
// A Reader delivers events one at a time. The TextReader type implements a
// Reader for JSON text on top of the lexical Scanner:
//
//	r := jdoc.NewReader(input)
//	for {
//	   ev, err := r.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   }
//	   log.Printf("Event: %v", ev)
//	}
//
// In case of a grammar violation, Next reports an error of concrete type
// *jdoc.SyntaxError, and all further calls report the same error.
//
// Other event sources live in subpackages of source/; the tree and convert
// packages consume events from any Reader.
package jdoc
