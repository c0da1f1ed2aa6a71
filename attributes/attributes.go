// Package attributes turns raw element attributes into typed values.
package attributes

import "strings"

type Kind int

const (
	Custom Kind = iota
	ID
	Class
	Style
	Title
	Lang
	Dir
	Hidden
	TabIndex
	Role
	AccessKey
	Draggable
	ContentEditable
	SpellCheck
	InputMode
	EnterKeyHint
	Translate
	Data
	Enabled
	Disabled
	Checked
	Selected
	ReadOnly
	Required
	Multiple
	Autofocus
	Href
	Src
	Alt
	Name
	Value
	Type
	Placeholder
	Min
	Max
	Step
	Width
	Height
	Rows
	Cols
	Size
	MaxLength
	MinLength
	Pattern
	Accept
	AcceptCharset
	AutoComplete
	AutoCapitalize
	For
	Action
	Method
	Enctype
	Target
	Rel
	Download
	SrcSet
	Sizes
	Media
	Loading
	Decoding
	ReferrerPolicy
	CrossOrigin
	Async
	Defer
	Charset
	Content
	HttpEquiv
	Controls
	Autoplay
	Loop
	Muted
	PlaysInline
	Poster
	Preload
	Aria
)

type valueType int

const (
	stringValue valueType = iota
	boolValue
	optionalValue
	classValue
	styleValue
)

type kindInfo struct {
	kind      Kind
	valueType valueType
}

// Keyed by lower case attribute name.
var knownKinds = map[string]kindInfo{
	"id":              {ID, stringValue},
	"class":           {Class, classValue},
	"style":           {Style, styleValue},
	"title":           {Title, stringValue},
	"lang":            {Lang, stringValue},
	"dir":             {Dir, stringValue},
	"hidden":          {Hidden, boolValue},
	"tabindex":        {TabIndex, stringValue},
	"role":            {Role, stringValue},
	"accesskey":       {AccessKey, stringValue},
	"draggable":       {Draggable, boolValue},
	"contenteditable": {ContentEditable, boolValue},
	"spellcheck":      {SpellCheck, boolValue},
	"inputmode":       {InputMode, stringValue},
	"enterkeyhint":    {EnterKeyHint, stringValue},
	"translate":       {Translate, boolValue},
	"enabled":         {Enabled, boolValue},
	"disabled":        {Disabled, boolValue},
	"checked":         {Checked, boolValue},
	"selected":        {Selected, boolValue},
	"readonly":        {ReadOnly, boolValue},
	"required":        {Required, boolValue},
	"multiple":        {Multiple, boolValue},
	"autofocus":       {Autofocus, boolValue},
	"href":            {Href, stringValue},
	"src":             {Src, stringValue},
	"alt":             {Alt, stringValue},
	"name":            {Name, stringValue},
	"value":           {Value, stringValue},
	"type":            {Type, stringValue},
	"placeholder":     {Placeholder, stringValue},
	"min":             {Min, stringValue},
	"max":             {Max, stringValue},
	"step":            {Step, stringValue},
	"width":           {Width, stringValue},
	"height":          {Height, stringValue},
	"rows":            {Rows, stringValue},
	"cols":            {Cols, stringValue},
	"size":            {Size, stringValue},
	"maxlength":       {MaxLength, stringValue},
	"minlength":       {MinLength, stringValue},
	"pattern":         {Pattern, stringValue},
	"accept":          {Accept, stringValue},
	"accept-charset":  {AcceptCharset, stringValue},
	"autocomplete":    {AutoComplete, stringValue},
	"autocapitalize":  {AutoCapitalize, stringValue},
	"for":             {For, stringValue},
	"action":          {Action, stringValue},
	"method":          {Method, stringValue},
	"enctype":         {Enctype, stringValue},
	"target":          {Target, stringValue},
	"rel":             {Rel, stringValue},
	"download":        {Download, optionalValue},
	"srcset":          {SrcSet, stringValue},
	"sizes":           {Sizes, stringValue},
	"media":           {Media, stringValue},
	"loading":         {Loading, stringValue},
	"decoding":        {Decoding, stringValue},
	"referrerpolicy":  {ReferrerPolicy, stringValue},
	"crossorigin":     {CrossOrigin, stringValue},
	"async":           {Async, boolValue},
	"defer":           {Defer, boolValue},
	"charset":         {Charset, stringValue},
	"content":         {Content, stringValue},
	"http-equiv":      {HttpEquiv, stringValue},
	"controls":        {Controls, boolValue},
	"autoplay":        {Autoplay, boolValue},
	"loop":            {Loop, boolValue},
	"muted":           {Muted, boolValue},
	"playsinline":     {PlaysInline, boolValue},
	"poster":          {Poster, stringValue},
	"preload":         {Preload, stringValue},
}

// Attribute is a single parsed attribute. Which fields are meaningful depends
// on Kind: boolean kinds use Bool, Class and Style kinds use their pointers,
// everything else uses Value. HasValue records whether a value was written in
// the source at all.
type Attribute struct {
	Kind Kind
	// Name is the key for Data and Aria attributes (without the prefix) and
	// the raw name for Custom attributes. It is empty for known kinds.
	Name     string
	Value    string
	HasValue bool
	Bool     bool
	Class    *ClassList
	Style    *StyleAttribute
}

// Multi reports whether more than one attribute of this kind may be kept.
func (a Attribute) Multi() bool {
	return a.Kind == Data || a.Kind == Aria || a.Kind == Custom
}

// Attributes is an ordered attribute list. Single-valued kinds keep the
// position of their first occurrence and the value of their last.
type Attributes struct {
	items []Attribute
	index map[Kind]int
}

// Add parses a raw attribute. A nil value means the attribute was written
// without "=".
func (a *Attributes) Add(name string, value *string) {
	a.push(build(name, value))
}

func (a *Attributes) push(attribute Attribute) {
	if attribute.Multi() {
		a.items = append(a.items, attribute)
		return
	}
	if a.index == nil {
		a.index = make(map[Kind]int)
	}
	if i, ok := a.index[attribute.Kind]; ok {
		a.items[i] = attribute
		return
	}
	a.index[attribute.Kind] = len(a.items)
	a.items = append(a.items, attribute)
}

// All returns the attributes in source order.
func (a *Attributes) All() []Attribute {
	return a.items
}

func (a *Attributes) Len() int {
	return len(a.items)
}

// Get returns the attribute of a single-valued kind.
func (a *Attributes) Get(kind Kind) (Attribute, bool) {
	i, ok := a.index[kind]
	if !ok {
		return Attribute{}, false
	}
	return a.items[i], true
}

// ID returns the id attribute's value, or "" when there is none.
func (a *Attributes) ID() string {
	attribute, _ := a.Get(ID)
	return attribute.Value
}

// Classes returns the individual class names.
func (a *Attributes) Classes() []string {
	attribute, ok := a.Get(Class)
	if !ok {
		return nil
	}
	return attribute.Class.Classes
}

// Style returns the parsed inline style, nil when there is none.
func (a *Attributes) Style() *StyleAttribute {
	attribute, ok := a.Get(Style)
	if !ok {
		return nil
	}
	return attribute.Style
}

// Data returns the values of every data-* attribute with the given key.
func (a *Attributes) Data(key string) []string {
	var result []string
	for _, attribute := range a.items {
		if attribute.Kind == Data && attribute.Name == key {
			result = append(result, attribute.Value)
		}
	}
	return result
}

func build(name string, value *string) Attribute {
	normalized := strings.ToLower(name)
	raw := ""
	if value != nil {
		raw = *value
	}
	attribute := Attribute{Value: raw, HasValue: value != nil}

	if info, ok := knownKinds[normalized]; ok {
		attribute.Kind = info.kind
		switch info.valueType {
		case boolValue:
			attribute.Bool = ParseBool(value)
			attribute.Value = ""
		case classValue:
			attribute.Class = ParseClassList(raw)
		case styleValue:
			attribute.Style = ParseStyle(raw)
		}
		return attribute
	}

	switch {
	case strings.HasPrefix(normalized, "data-"):
		attribute.Kind = Data
		attribute.Name = name[len("data-"):]
	case strings.HasPrefix(normalized, "aria-"):
		attribute.Kind = Aria
		attribute.Name = name[len("aria-"):]
	default:
		attribute.Kind = Custom
		attribute.Name = name
	}
	return attribute
}

// ParseBool reads a boolean attribute. An attribute written without a value,
// or with a blank one, is true. "false", "0", "no" and "off" are false in any
// case, anything else is true.
func ParseBool(value *string) bool {
	if value == nil {
		return true
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return true
	}
	switch strings.ToLower(trimmed) {
	case "false", "0", "no", "off":
		return false
	}
	return true
}

type ClassList struct {
	Raw     string
	Classes []string
}

func ParseClassList(raw string) *ClassList {
	return &ClassList{Raw: raw, Classes: strings.Fields(raw)}
}

// Has reports whether class is one of the listed classes.
func (c *ClassList) Has(class string) bool {
	for _, existing := range c.Classes {
		if existing == class {
			return true
		}
	}
	return false
}
