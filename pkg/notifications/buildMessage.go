package notifications

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/cloudbuild"
)

const banner = "*GOOGLE CLOUD BUILD:* "
const discordBanner = "**GOOGLE CLOUD BUILD:** "
const logsTitle = "Build logs"
const footer = "Google Cloud Build"
const footerIcon = "https://ssl.gstatic.com/pantheon/images/containerregistry/container_registry_color.png"

const defaultColor = "#4285F4" // blue

var statusColor = map[string]string{
	cloudbuild.StatusQueued:        defaultColor,
	cloudbuild.StatusWorking:       defaultColor,
	cloudbuild.StatusSuccess:       "#34A853", // green
	cloudbuild.StatusFailure:       "#EA4335", // red
	cloudbuild.StatusTimeout:       "#FBBC05", // yellow
	cloudbuild.StatusInternalError: "#EA4335", // red
}

type buildMessage struct {
	build *cloudbuild.Build
}

func MessageFromBuild(build *cloudbuild.Build) Message {
	return &buildMessage{
		build: build,
	}
}

func (bm *buildMessage) AsSlackMessage() (*slackMessage, error) {
	attachment := Attachment{
		Color:      colorOf(bm.build.Status),
		Title:      logsTitle,
		TitleLink:  bm.build.LogURL,
		Fields:     []Field{},
		Footer:     footer,
		FooterIcon: footerIcon,
		Ts:         bm.timestamp(),
	}

	for _, f := range bm.fields() {
		attachment.Fields = append(attachment.Fields, Field(f))
	}

	return &slackMessage{
		Text:        banner + bm.headline(),
		Mrkdwn:      true,
		Attachments: []Attachment{attachment},
	}, nil
}

func (bm *buildMessage) AsDiscordMessage() (*discordMessage, error) {
	color, err := strconv.ParseInt(colorOf(bm.build.Status)[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color: %s", err)
	}

	embed := &discordgo.MessageEmbed{
		Type:   discordgo.EmbedTypeRich,
		Title:  logsTitle,
		URL:    bm.build.LogURL,
		Color:  int(color),
		Fields: []*discordgo.MessageEmbedField{},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    footer,
			IconURL: footerIcon,
		},
	}
	if ts := bm.timestamp(); ts != 0 {
		embed.Timestamp = time.Unix(ts, 0).UTC().Format(time.RFC3339)
	}

	for _, f := range bm.fields() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Title,
			Value:  f.Value,
			Inline: f.Short,
		})
	}

	return &discordMessage{
		Text:  discordBanner + bm.headline(),
		Embed: embed,
	}, nil
}

func (bm *buildMessage) headline() string {
	if bm.build.IsWorking() {
		return fmt.Sprintf("build `%s` started", bm.build.ID)
	}
	return fmt.Sprintf("build `%s` finished", bm.build.ID)
}

// timestamp is the start time of running builds and the finish time of
// finished ones, in epoch seconds. Zero if the time is not known.
func (bm *buildMessage) timestamp() int64 {
	t := bm.build.FinishedAt()
	if bm.build.IsWorking() {
		t = bm.build.StartedAt()
	}
	if t.IsZero() {
		return 0
	}
	return t.Round(time.Second).Unix()
}

type field struct {
	Title string
	Value string
	Short bool
}

// fields are ordered: Status, Duration, Repository, Branch, then one Image per image
func (bm *buildMessage) fields() []field {
	hasSource := bm.build.Source != nil

	fields := []field{{
		Title: "Status",
		Value: bm.build.Status,
		Short: hasSource,
	}}

	if !bm.build.IsWorking() {
		fields = append(fields, field{
			Title: "Duration",
			Value: humanizeDuration(bm.duration()),
			Short: true,
		})
	}

	if hasSource {
		fields = append(fields,
			field{
				Title: "Repository",
				Value: bm.build.Repo(),
				Short: true,
			},
			field{
				Title: "Branch",
				Value: bm.build.Branch(),
				Short: true,
			},
		)
	}

	for _, image := range bm.build.Images {
		fields = append(fields, field{
			Title: "Image",
			Value: image,
		})
	}

	return fields
}

func (bm *buildMessage) duration() time.Duration {
	start, finish := bm.build.StartedAt(), bm.build.FinishedAt()
	if start.IsZero() || finish.IsZero() {
		return 0
	}
	return finish.Sub(start)
}

func colorOf(status string) string {
	if color, ok := statusColor[status]; ok {
		return color
	}
	return defaultColor
}
