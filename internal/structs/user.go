// Package structs holds the opaque Discord domain payloads (users, guilds,
// channels, messages, interactions) that flow through the gateway as DISPATCH
// data. The gateway session engine never interprets these fields; it only
// ever passes them through to the consumer or the roster cache.
package structs

type User struct {
	ID                   string      `json:"id"`
	Username             string      `json:"username"`
	PublicFlags          uint8       `json:"public_flags"`
	Discriminator        string      `json:"discriminator"`
	Avatar               string      `json:"avatar"`
	Clan                 interface{} `json:"clan,omitempty"`
	GlobalName           string      `json:"global_name,omitempty"`
	AvatarDecorationData interface{} `json:"avatar_decoration_data,omitempty"`
	Bot                  bool        `json:"bot,omitempty"`
}
