// Copyright (c) 2026 Kyradjis
// released under the MIT license

package utils

import (
	"errors"
	"strings"

	"golang.org/x/text/secure/precis"
)

var (
	errCouldNotStabilize = errors.New("could not stabilize string while casefolding")
	errStringIsEmpty     = errors.New("string is empty")
	errInvalidCharacter  = errors.New("invalid character")
)

// Each pass of PRECIS casefolding is a composition of idempotent operations,
// but not idempotent itself, so the RFC says to iterate until the string
// stabilizes, with four passes as the cutoff:
// https://tools.ietf.org/html/draft-ietf-precis-7564bis-10.html#section-7
func iterateFolding(profile *precis.Profile, oldStr string) (str string, err error) {
	str = oldStr
	for i := 0; i < 4; i++ {
		str, err = profile.CompareKey(str)
		if err != nil {
			return "", err
		}
		if oldStr == str {
			break
		}
		oldStr = str
	}
	if oldStr != str {
		return "", errCouldNotStabilize
	}
	return str, nil
}

// Casefold returns a casefolded string, without doing any name-specific checks.
func Casefold(str string) (string, error) {
	return iterateFolding(precis.UsernameCaseMapped, str)
}

// CasefoldName returns a casefolded version of a nick or entity type name.
// Spaces, commas and wildcard characters are rejected since names are used
// as registry keys and in mask matching.
func CasefoldName(name string) (string, error) {
	if len(name) == 0 {
		return "", errStringIsEmpty
	}
	lowered, err := Casefold(name)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(lowered, " ,*?") {
		return "", errInvalidCharacter
	}
	return lowered, nil
}

// CasefoldEntityType normalizes a namespaced entity type name, e.g.
// `BlueLib:Dragon` folds to `bluelib:dragon`. The namespace separator is
// allowed; everything else goes through the usual name rules.
func CasefoldEntityType(name string) (string, error) {
	if namespace, path, found := strings.Cut(name, ":"); found {
		foldedNamespace, err := CasefoldName(namespace)
		if err != nil {
			return "", err
		}
		foldedPath, err := CasefoldName(path)
		if err != nil {
			return "", err
		}
		return foldedNamespace + ":" + foldedPath, nil
	}
	return CasefoldName(name)
}
