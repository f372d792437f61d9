package parser

import (
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Relationship type suffixes, matched against the end of the Type URI so
// both transitional and strict namespaces resolve.
const (
	RelTypeWorksheet = "/worksheet"
	RelTypeDrawing   = "/drawing"
	RelTypeChart     = "/chart"
	RelTypeImage     = "/image"
	RelTypeOleObject = "/oleObject"
	RelTypePackage   = "/package"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// IsExternal reports whether the target lies outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

// HasType reports whether the relationship type ends with suffix.
func (r Relationship) HasType(suffix string) bool {
	return strings.HasSuffix(r.Type, suffix)
}

// ParseRelationships parses a .rels part.
func ParseRelationships(data []byte) ([]Relationship, error) {
	var rels []Relationship
	decoder := newWalker(data).d
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel Relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.ID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				case "TargetMode":
					rel.TargetMode = attr.Value
				}
			}
			rels = append(rels, rel)
		}
	}
	return rels, nil
}

// FindRelationship returns the relationship with id.
func FindRelationship(rels []Relationship, id string) (Relationship, bool) {
	for _, rel := range rels {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// FindDrawingRelationship returns the first internal drawing relationship.
func FindDrawingRelationship(rels []Relationship) (Relationship, bool) {
	for _, rel := range rels {
		if rel.HasType(RelTypeDrawing) && !rel.IsExternal() {
			return rel, true
		}
	}
	return Relationship{}, false
}

// RelsPath returns the relationships part of part:
// xl/worksheets/sheet1.xml -> xl/worksheets/_rels/sheet1.xml.rels.
func RelsPath(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget resolves a relationship target against its source part.
func ResolveTarget(source, target string) string {
	return resolveRelativePath(target, path.Dir(source))
}

// resolveRelativePath resolves target against baseDir. Targets starting with
// "/" are relative to the package root.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}
