package cards

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/registry"
	"github.com/goliatone/go-cardgen/pkg/version"
)

// FallbackDrop is the fallback member value that drops an unknown element
// without a diagnostic.
const FallbackDrop = "drop"

// ParseOption configures a SerializationContext.
type ParseOption func(*SerializationContext)

// WithRegistry overrides the element registry. Defaults to GlobalRegistry.
func WithRegistry(reg *registry.Registry[Element]) ParseOption {
	return func(c *SerializationContext) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithTargetVersion pins the schema version. It takes precedence over a
// document's own "version" member.
func WithTargetVersion(v version.Version) ParseOption {
	return func(c *SerializationContext) {
		if !v.IsZero() {
			c.version = v
			c.versionPinned = true
		}
	}
}

// WithHostConfig sets the host configuration attached to parsed roots.
func WithHostConfig(cfg hostconfig.HostConfig) ParseOption {
	return func(c *SerializationContext) {
		c.hostConfig = cfg
	}
}

// WithLogger sets the structured logger diagnostics are mirrored to.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *SerializationContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDesignMode marks the parse as happening inside an authoring tool.
func WithDesignMode(enabled bool) ParseOption {
	return func(c *SerializationContext) {
		c.designMode = enabled
	}
}

// WithEventLog records diagnostics into an existing log.
func WithEventLog(log *EventLog) ParseOption {
	return func(c *SerializationContext) {
		if log != nil {
			c.events = log
		}
	}
}

// SerializationContext carries the state of one parse or serialization pass.
// It is not safe for concurrent use.
type SerializationContext struct {
	version       version.Version
	versionPinned bool
	registry      *registry.Registry[Element]
	events        *EventLog
	logger        *slog.Logger
	hostConfig    hostconfig.HostConfig
	host          *Host
	designMode    bool

	path   []string
	denied [][]string
	strict int
}

// NewSerializationContext builds a context targeting the latest schema
// version with the global registry.
func NewSerializationContext(opts ...ParseOption) *SerializationContext {
	ctx := &SerializationContext{
		version:    version.Latest,
		registry:   GlobalRegistry(),
		events:     NewEventLog(),
		logger:     slog.Default(),
		hostConfig: hostconfig.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ctx)
		}
	}
	ctx.host = &Host{
		Config: ctx.hostConfig.Normalize(),
		Events: ctx.events,
		Logger: ctx.logger,
	}
	return ctx
}

// Version returns the active schema version.
func (c *SerializationContext) Version() version.Version { return c.version }

// SetVersion changes the active schema version unless one was pinned.
func (c *SerializationContext) SetVersion(v version.Version) {
	if c.versionPinned || v.IsZero() {
		return
	}
	c.version = v
}

// Host returns the host attached to elements parsed by this context.
func (c *SerializationContext) Host() *Host { return c.host }

// Events returns the context's event log.
func (c *SerializationContext) Events() *EventLog { return c.events }

// Registry returns the element registry in use.
func (c *SerializationContext) Registry() *registry.Registry[Element] { return c.registry }

// DesignMode reports whether the pass runs inside an authoring tool.
func (c *SerializationContext) DesignMode() bool { return c.designMode }

// Strict reports whether structural fallback is disabled for the current
// subtree.
func (c *SerializationContext) Strict() bool { return c.strict > 0 }

// Path returns the JSON pointer of the node being parsed.
func (c *SerializationContext) Path() string {
	if len(c.path) == 0 {
		return ""
	}
	return "/" + strings.Join(c.path, "/")
}

// Enter pushes path segments and returns the matching pop.
func (c *SerializationContext) Enter(segments ...string) func() {
	depth := len(c.path)
	for _, seg := range segments {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1")
		c.path = append(c.path, seg)
	}
	return func() {
		c.path = c.path[:depth]
	}
}

// Scope runs fn with an extra denylist, optionally disabling fallback. Nested
// containers parsed inside fn inherit both.
func (c *SerializationContext) Scope(disallowed []string, strict bool, fn func()) {
	c.denied = append(c.denied, disallowed)
	if strict {
		c.strict++
	}
	defer func() {
		c.denied = c.denied[:len(c.denied)-1]
		if strict {
			c.strict--
		}
	}()
	fn()
}

// IsDisallowed reports whether typeName is denied by opts or any enclosing
// scope.
func (c *SerializationContext) IsDisallowed(typeName string, local []string) bool {
	if slices.Contains(local, typeName) {
		return true
	}
	for _, set := range c.denied {
		if slices.Contains(set, typeName) {
			return true
		}
	}
	return false
}

// LogEvent records a diagnostic at the current path and mirrors it to the
// logger at warn level.
func (c *SerializationContext) LogEvent(kind EventKind, typeName, message string) {
	ev := ValidationEvent{
		Kind:     kind,
		Path:     c.Path(),
		TypeName: typeName,
		Message:  message,
	}
	c.events.Record(ev)
	c.logger.Warn("card parse",
		slog.String("kind", kind.String()),
		slog.String("type", typeName),
		slog.String("path", ev.Path),
		slog.String("message", message),
	)
}

// ParseChildOptions drive a single ParseChild call.
type ParseChildOptions struct {
	// Disallowed lists type names rejected in this container.
	Disallowed []string
	// AllowFallback permits the "fallback" member of unknown elements.
	AllowFallback bool
	// ResolveType returns a fresh instance for typeName, or nil. An absent
	// "type" member is passed as "".
	ResolveType func(typeName string) Element
	// OnRejected is called for every dropped node. Defaults to LogEvent.
	OnRejected func(typeName string, kind EventKind)
}

// ParseChild resolves a JSON node into an element owned by parent. It never
// fails: rejected nodes are reported through OnRejected and yield nil.
func (c *SerializationContext) ParseChild(parent Element, raw any, opts ParseChildOptions) Element {
	node, ok := raw.(map[string]any)
	if !ok {
		c.LogEvent(InvalidPropertyValue, "", fmt.Sprintf("expected an element object, got %s", jsonKind(raw)))
		return nil
	}

	reject := opts.OnRejected
	if reject == nil {
		reject = func(typeName string, kind EventKind) {
			c.LogEvent(kind, typeName, RejectionMessage(typeName, kind))
		}
	}

	typeName, ok := readTypeName(node)
	if !ok {
		reject(fmt.Sprint(node["type"]), UnknownType)
		return nil
	}

	if typeName != "" && c.IsDisallowed(typeName, opts.Disallowed) {
		reject(typeName, DisallowedType)
		return nil
	}

	var el Element
	if opts.ResolveType != nil {
		el = opts.ResolveType(typeName)
	}
	if el == nil {
		if opts.AllowFallback && !c.Strict() {
			if fb, present := node["fallback"]; present {
				return c.parseFallback(parent, fb, opts)
			}
		}
		reject(typeName, UnknownType)
		return nil
	}

	b := el.Base()
	b.setParent(parent)
	if parent == nil {
		b.SetHost(c.host)
	}
	el.Parse(node, c)
	return el
}

func (c *SerializationContext) parseFallback(parent Element, fb any, opts ParseChildOptions) Element {
	if s, ok := fb.(string); ok && s == FallbackDrop {
		return nil
	}
	defer c.Enter("fallback")()
	return c.ParseChild(parent, fb, opts)
}

// ParseElement parses raw with the registry resolver at the context's
// version. An absent "type" is unknown.
func (c *SerializationContext) ParseElement(parent Element, raw any, allowFallback bool, disallowed []string) Element {
	return c.ParseChild(parent, raw, ParseChildOptions{
		Disallowed:    disallowed,
		AllowFallback: allowFallback,
		ResolveType:   c.resolveRegistered,
	})
}

func (c *SerializationContext) resolveRegistered(typeName string) Element {
	if typeName == "" {
		return nil
	}
	factory, ok := c.registry.Resolve(typeName, c.version)
	if !ok {
		return nil
	}
	return factory()
}

// ParseArray walks the array member key of node, calling fn for every entry
// with the path positioned on it. A non-array member is reported and skipped.
func (c *SerializationContext) ParseArray(node map[string]any, key string, fn func(item any)) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return
	}
	items, ok := raw.([]any)
	if !ok {
		defer c.Enter(key)()
		c.LogEvent(InvalidPropertyValue, "", fmt.Sprintf("%q expects an array, got %s", key, jsonKind(raw)))
		return
	}
	for i, item := range items {
		pop := c.Enter(key, strconv.Itoa(i))
		fn(item)
		pop()
	}
}

// SerializeArray stores the JSON form of elements under key, always as an
// array.
func (c *SerializationContext) SerializeArray(target map[string]any, key string, elements []Element) {
	out := make([]any, 0, len(elements))
	for _, el := range elements {
		if js := ToJSON(el, c); js != nil {
			out = append(out, js)
		}
	}
	target[key] = out
}

func (c *SerializationContext) invalidProperty(name string, err error) {
	defer c.Enter(name)()
	c.LogEvent(InvalidPropertyValue, "", err.Error())
}

func (c *SerializationContext) unsupportedProperty(name string, min version.Version) {
	defer c.Enter(name)()
	c.LogEvent(UnsupportedProperty, "", fmt.Sprintf("property %q requires schema %s, document targets %s", name, min, c.version))
}

// RejectionMessage formats the default diagnostic text for a dropped node.
func RejectionMessage(typeName string, kind EventKind) string {
	switch kind {
	case DisallowedType:
		return fmt.Sprintf("element type %q is not allowed here", typeName)
	case UnknownType:
		if typeName == "" {
			return `element is missing a "type" member`
		}
		return fmt.Sprintf("unknown element type %q", typeName)
	default:
		return fmt.Sprintf("element %q rejected: %s", typeName, kind)
	}
}

func readTypeName(node map[string]any) (string, bool) {
	raw, ok := node["type"]
	if !ok || raw == nil {
		return "", true
	}
	name, ok := raw.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(name), true
}

func jsonKind(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
