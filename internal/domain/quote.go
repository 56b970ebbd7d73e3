package domain

// Quote carries snapshots of the speaking character and the episode rather
// than foreign keys. Relation lookups join on Name.
type Quote struct {
	Quote     string `json:"quote"`
	Character Ref    `json:"character"`
	Episode   Ref    `json:"episode"`
}
