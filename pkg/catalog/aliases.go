package catalog

import (
	"sort"
)

// WellKnownAliases lists module paths exposed by common packages whose
// require names differ from their ids.
var WellKnownAliases = map[string][]string{
	"luasocket": {
		"socket",
		"socket.http",
		"socket.ftp",
		"socket.smtp",
		"socket.url",
		"socket.headers",
		"socket.tp",
		"socket.core",
	},
	"cjson":  {"cjson.safe"},
	"ssl":    {"ssl.https"},
	"mimgui": {"mimgui.imgui", "mimgui.dx9", "mimgui.cdefs"},
	"mime":   {"mime.core"},
	"xml":    {"xml.core"},
	"windows": {
		"windows.message",
	},
}

// AliasTable inverts id -> module paths into module path -> id. When two
// ids claim the same module path the lexically smaller id wins, so the
// table does not depend on map iteration order.
func AliasTable(provides map[string][]string) map[string]string {
	ids := make([]string, 0, len(provides))
	for id := range provides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := make(map[string]string)
	for _, id := range ids {
		for _, mod := range provides[id] {
			if _, taken := table[mod]; !taken {
				table[mod] = id
			}
		}
	}
	return table
}
