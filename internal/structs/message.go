package structs

// Message represents a message sent in a channel within Discord.
// https://discord.com/developers/docs/resources/message
type Message struct {
	ID                   string      `json:"id"`
	ChannelID            string      `json:"channel_id"`
	GuildID              string      `json:"guild_id,omitempty"`
	Author               User        `json:"author"`
	Content              string      `json:"content"`
	Timestamp            string      `json:"timestamp"`
	EditedTimestamp      string      `json:"edited_timestamp,omitempty"`
	TTS                  bool        `json:"tts"`
	MentionEveryone      bool        `json:"mention_everyone"`
	Nonce                string      `json:"nonce"`
	Type                 int         `json:"type"`
	Interaction          Interaction `json:"interaction,omitempty"`
	Mentions             any         `json:"mentions,omitempty"`
	Attachments          any         `json:"attachments,omitempty"`
	Embeds               any         `json:"embeds,omitempty"`
	Flags                any         `json:"flags,omitempty"`
	MessageReference     any         `json:"message_reference,omitempty"`
	ReferencedMessage    any         `json:"referenced_message,omitempty"`
	Components           any         `json:"components,omitempty"`
}
