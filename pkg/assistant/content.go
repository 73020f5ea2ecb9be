package assistant

import (
	"bytes"
	"encoding/json"
)

// ContentKind tags which upstream representation a Content value holds.
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentBlocks
	ContentText
	ContentObject
)

// Block is one element of a block-sequence content value.
type Block struct {
	Type string
	Text string
}

// Content is the message body in one of the shapes the upstream API may return:
// a sequence of blocks, a plain string, or a single object with a nested text value.
type Content struct {
	kind   ContentKind
	blocks []Block
	text   string
}

func BlockContent(blocks ...Block) Content {
	return Content{kind: ContentBlocks, blocks: blocks}
}

func TextContent(s string) Content {
	return Content{kind: ContentText, text: s}
}

func ObjectContent(s string) Content {
	return Content{kind: ContentObject, text: s}
}

func (c Content) Kind() ContentKind {
	return c.kind
}

// Text extracts the displayable text. Blocks yield the first block's text;
// an unrecognized or empty shape yields "".
func (c Content) Text() string {
	switch c.kind {
	case ContentBlocks:
		if len(c.blocks) == 0 {
			return ""
		}
		return c.blocks[0].Text
	case ContentText, ContentObject:
		return c.text
	default:
		return ""
	}
}

// nestedText accepts both {"value": "..."} and a bare string.
type nestedText struct {
	Value string
}

func (n *nestedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	n.Value = obj.Value
	return nil
}

type rawBlock struct {
	Type string      `json:"type"`
	Text *nestedText `json:"text"`
}

// UnmarshalJSON decodes any of the recognized shapes. Unknown shapes decode to
// ContentNone rather than failing the whole message.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var raw []rawBlock
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil
		}
		blocks := make([]Block, 0, len(raw))
		for _, b := range raw {
			block := Block{Type: b.Type}
			if b.Text != nil {
				block.Text = b.Text.Value
			}
			blocks = append(blocks, block)
		}
		*c = BlockContent(blocks...)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		*c = TextContent(s)
	case '{':
		var obj rawBlock
		if err := json.Unmarshal(trimmed, &obj); err != nil || obj.Text == nil || obj.Text.Value == "" {
			return nil
		}
		*c = ObjectContent(obj.Text.Value)
	}
	return nil
}
