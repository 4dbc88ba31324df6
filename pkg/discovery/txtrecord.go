package discovery

import "strings"

// PropertyMap is a parsed mDNS TXT record, key to value.
type PropertyMap map[string]string

// StringsToProperties parses a zeroconf entry's raw "key=value" TXT strings
// into a PropertyMap, the Go counterpart of browser.py's
// `info.properties.items()` walk over the decoded TXT record.
func StringsToProperties(strs []string) PropertyMap {
	props := make(PropertyMap, len(strs))
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			props[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			props[parts[0]] = ""
		}
	}
	return props
}

// ToStringMap converts a PropertyMap to a plain map[string]string, the
// shape model.ServiceEndpoint.Properties carries.
func (p PropertyMap) ToStringMap() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
