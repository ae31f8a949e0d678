// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package args turns the raw text found between the parentheses of a
// directive call into typed arguments.
//
// # Tokenizing
//
// The host language is never parsed. Splitting `"a,b", {x:1,y:2}, 'c'` on
// commas would cut through the string and the object, so Tokenize first hides
// every quoted string and every innermost (), {} or [] group behind a
// placeholder, repeating until no group is left. The flat text is then split
// on commas and each piece has its placeholders expanded back.
//
// # Classifying
//
// Each raw piece is classified by its first and last character:
//
//   - 'text' or "text" is a String argument holding the inner text, with no
//     escape processing.
//   - {...} is an Object argument, decoded as an HCL object constructor (a
//     superset of JSON objects, so both {"a": 1} and {a = 1} or {a: 1} are
//     accepted). A decode failure is returned as an error.
//   - anything else yields no argument at all. Handlers address arguments by
//     index, so a bare identifier in front of a string shifts the string to
//     index 0.
package args
