package host

// ConfigOption declares a user-facing configuration option of the source.
// The host renders the label and help text in its preferences UI.
type ConfigOption struct {
	Name    string
	Type    string
	Default int
	Label   string
	Help    string
}

// Options declares the source's numeric configuration options.
func (s *Source) Options() []ConfigOption {
	return []ConfigOption{
		{
			Name:    "tag_user_count",
			Type:    "number",
			Default: s.opts.TagUserCount,
			Label:   "有效标签的最小打标签人数",
			Help:    "其他用户打标签时，至少有多少人打了这个标签，才会被认为是有效标签",
		},
		{
			Name:    "tag_count",
			Type:    "number",
			Default: s.opts.TagCount,
			Label:   "最大标签数量",
			Help:    "最多保留多少个标签",
		},
	}
}
