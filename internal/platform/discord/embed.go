package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"giveaway-bot-backend/internal/features/giveaway/models"
)

const (
	colorActive = 0x00ff00
	colorEnded  = 0x95a5a6
)

// buildGiveawayEmbed renders a giveaway view as a Discord embed. Active and
// ended giveaways share the layout; the ended form swaps the countdown for
// the winner list.
func buildGiveawayEmbed(view *models.GiveawayView) *discordgo.MessageEmbed {
	var b strings.Builder

	if view.Description != "" {
		b.WriteString(view.Description)
		b.WriteString("\n\n")
	}

	if view.Ended {
		if len(view.WinnerIDs) == 0 {
			b.WriteString("Winners: **none**\n")
		} else {
			b.WriteString("Winners: " + mentionList(view.WinnerIDs) + "\n")
		}
		b.WriteString(fmt.Sprintf("Ended: <t:%d:R>\n", view.EndsAt.Unix()))
	} else {
		b.WriteString("Click 🎉 to enter!\n")
		b.WriteString(fmt.Sprintf("Ends: <t:%d:R>\n", view.EndsAt.Unix()))
	}

	b.WriteString(fmt.Sprintf("Entries: **%d**\n", view.EntriesCount))
	b.WriteString(fmt.Sprintf("Winners drawn: **%d**\n", view.WinnersCount))

	if len(view.RequirementsSummary) > 0 {
		b.WriteString("\n**Requirements**\n")
		for _, line := range view.RequirementsSummary {
			b.WriteString("• " + line + "\n")
		}
	}

	color := colorActive
	footer := "Ends at"
	if view.Ended {
		color = colorEnded
		footer = "Ended at"
	}

	embed := &discordgo.MessageEmbed{
		Title:       view.Prize,
		Description: b.String(),
		Color:       color,
		Timestamp:   view.EndsAt.UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
	if view.HostName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: "Hosted by " + view.HostName}
	}
	return embed
}

func mentionList(ids []string) string {
	mentions := make([]string, 0, len(ids))
	for _, id := range ids {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, ", ")
}
