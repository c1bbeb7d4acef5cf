package hxup

import (
	"encoding/json"

	"github.com/a-h/templ"
)

// FollowAttrs builds the attributes for a link the default variant follows.
//
// With a target, the response fragment matching target replaces the same
// selector in the page; without one the link is followed with up-follow:
//
//	<a { hxup.FollowAttrs("/users/1", "#main")... }>Alice</a>
func FollowAttrs(url, target string) templ.Attributes {
	attrs := templ.Attributes{"href": url}
	if target != "" {
		attrs["up-target"] = target
	} else {
		attrs["up-follow"] = true
	}
	return attrs
}

// DashAttrs builds an up-dash shortcut, expanded by the up-dash macro into
// up-preload, up-instant and up-target.
func DashAttrs(target string) templ.Attributes {
	if target == "" {
		return templ.Attributes{"up-dash": true}
	}
	return templ.Attributes{"up-dash": target}
}

// ExpandAttrs makes an area follow its first matching link. An empty
// selector uses the first link in the area.
func ExpandAttrs(selector string) templ.Attributes {
	if selector == "" {
		return templ.Attributes{"up-expand": true}
	}
	return templ.Attributes{"up-expand": selector}
}

// DataAttrs encodes v as the JSON payload rules receive as Data, under the
// default up-data attribute. v must marshal to a JSON object. Engines
// configured with another DataAttribute use Engine.DataAttrs.
//
//	<div class="map" { hxup.DataAttrs(map[string]any{"lat": 52.5})... }></div>
func DataAttrs(v any) (templ.Attributes, error) {
	return dataAttrs(DefaultConfig().DataAttribute, v)
}

// DataAttrs is like the package-level DataAttrs but writes the engine's
// configured data attribute.
func (e *Engine) DataAttrs(v any) (templ.Attributes, error) {
	return dataAttrs(e.config.DataAttribute, v)
}

func dataAttrs(attribute string, v any) (templ.Attributes, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return templ.Attributes{attribute: string(data)}, nil
}

// MergeAttrs combines attribute sets; later sets win.
func MergeAttrs(sets ...templ.Attributes) templ.Attributes {
	merged := templ.Attributes{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	return merged
}
