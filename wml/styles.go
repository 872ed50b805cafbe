package wml

import (
	"encoding/xml"
	"sort"
	"strings"
)

// Style is one definition from word/styles.xml.
type Style struct {
	ID   string
	Name string // display name, built-in names normalized
	Type string // paragraph, character, table, numbering
}

// StyleCatalog indexes the document's style definitions by id and by
// display name. Lookups are case-insensitive.
type StyleCatalog struct {
	styles []Style
	byID   map[string]int
	byName map[string]int
}

type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

type styleDefXML struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// Word stores built-in style names in their internal lowercase form
// ("heading 1"); the UI and python-docx both surface the capitalized form.
// Display names follow the UI form so style comparisons behave the way
// callers expect.
func normalizeStyleName(name string) string {
	lower := strings.ToLower(name)
	if rest, ok := strings.CutPrefix(lower, "heading "); ok {
		return "Heading " + rest
	}
	switch lower {
	case "normal":
		return "Normal"
	case "title":
		return "Title"
	case "subtitle":
		return "Subtitle"
	case "caption":
		return "Caption"
	}
	return name
}

func parseStyles(data []byte) (*StyleCatalog, error) {
	parsed := &stylesXML{}
	if err := xml.Unmarshal(data, parsed); err != nil {
		return nil, err
	}
	cat := newStyleCatalog()
	for _, def := range parsed.Styles {
		name := def.Name.Val
		if name == "" {
			name = def.StyleID
		}
		cat.add(Style{
			ID:   def.StyleID,
			Name: normalizeStyleName(name),
			Type: def.Type,
		})
	}
	return cat, nil
}

func newStyleCatalog() *StyleCatalog {
	return &StyleCatalog{
		byID:   make(map[string]int),
		byName: make(map[string]int),
	}
}

func (c *StyleCatalog) add(s Style) {
	idx := len(c.styles)
	c.styles = append(c.styles, s)
	c.byID[strings.ToLower(s.ID)] = idx
	if _, taken := c.byName[strings.ToLower(s.Name)]; !taken {
		c.byName[strings.ToLower(s.Name)] = idx
	}
}

// Built-in fallbacks for documents whose styles.xml is missing or sparse.
var builtinNames = map[string]string{
	"normal":   "Normal",
	"title":    "Title",
	"subtitle": "Subtitle",
	"heading1": "Heading 1", "heading2": "Heading 2", "heading3": "Heading 3",
	"heading4": "Heading 4", "heading5": "Heading 5", "heading6": "Heading 6",
	"heading7": "Heading 7", "heading8": "Heading 8", "heading9": "Heading 9",
	"tablegrid": "Table Grid",
}

// DisplayName resolves a style id to its display name. An empty id means
// the default paragraph style, "Normal". Unknown ids fall back to built-in
// naming, then to the id itself.
func (c *StyleCatalog) DisplayName(id string) string {
	if id == "" {
		return "Normal"
	}
	if c != nil {
		if idx, ok := c.byID[strings.ToLower(id)]; ok {
			return c.styles[idx].Name
		}
	}
	if name, ok := builtinNames[strings.ToLower(id)]; ok {
		return name
	}
	return id
}

// IDForName resolves a display name (or a style id) to the style id.
func (c *StyleCatalog) IDForName(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	key := strings.ToLower(name)
	if idx, ok := c.byName[key]; ok {
		return c.styles[idx].ID, true
	}
	if idx, ok := c.byID[key]; ok {
		return c.styles[idx].ID, true
	}
	return "", false
}

// ParagraphStyleNames returns the display names of all paragraph styles,
// sorted.
func (c *StyleCatalog) ParagraphStyleNames() []string {
	if c == nil {
		return nil
	}
	var names []string
	for _, s := range c.styles {
		if s.Type == "" || s.Type == "paragraph" {
			names = append(names, s.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of catalogued styles.
func (c *StyleCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.styles)
}
