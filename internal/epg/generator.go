// SPDX-License-Identifier: MIT

// Package epg turns upstream listings into an XMLTV document.
package epg

import (
	"encoding/xml"

	"github.com/ManuGH/epgrab/internal/channels"
)

// DefaultGenerator is written to the generator-info-name attribute.
const DefaultGenerator = "epgrab"

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string     `xml:"id,attr"`
	DisplayName []LangText `xml:"display-name"`
}

type Programme struct {
	Channel string    `xml:"channel,attr"`
	Start   string    `xml:"start,attr"`
	Stop    string    `xml:"stop,attr"`
	Title   LangText  `xml:"title"`
	Desc    *LangText `xml:"desc,omitempty"`
}

// LangText is a character data element with an optional lang attribute.
type LangText struct {
	Lang string `xml:"lang,attr,omitempty"`
	Text string `xml:",chardata"`
}

// GenerateXMLTV builds the document for chans and schedule. Every registry
// channel is emitted, in registry order, whether or not it has programmes.
// The first display-name is the canonical name, the second the alias.
func GenerateXMLTV(chans []channels.Channel, schedule Schedule, opts Options) *TV {
	opts = opts.withDefaults()

	tv := &TV{
		Generator: opts.Generator,
		Channels:  make([]Channel, 0, len(chans)),
		Programs:  make([]Programme, 0, len(schedule)),
	}
	for _, ch := range chans {
		tv.Channels = append(tv.Channels, Channel{
			ID: ch.ID,
			DisplayName: []LangText{
				{Lang: opts.Language, Text: ch.Name},
				{Lang: opts.Language, Text: ch.Alias},
			},
		})
	}
	for _, rec := range schedule {
		p := Programme{
			Channel: rec.ChannelID,
			Start:   rec.Start,
			Stop:    rec.Stop,
			Title:   LangText{Lang: opts.Language, Text: rec.Title},
		}
		if rec.Desc != "" {
			p.Desc = &LangText{Lang: opts.Language, Text: rec.Desc}
		}
		tv.Programs = append(tv.Programs, p)
	}
	return tv
}
