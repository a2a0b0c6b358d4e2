package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"giveaway-bot-backend/internal/features/giveaway/models"
)

// Client wraps a discordgo session. It is the single place the rest of the
// codebase touches the Discord API: it serves the giveaway service as
// announcement renderer and the member service as guild fact gateway.
type Client struct {
	session *discordgo.Session
}

func NewClient(botToken string) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	return &Client{session: session}, nil
}

// Open connects the gateway websocket.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// PostAnnouncement sends the giveaway embed and returns the message ID used
// to address later edits.
func (c *Client) PostAnnouncement(ctx context.Context, channelID string, view *models.GiveawayView) (string, error) {
	msg, err := c.session.ChannelMessageSendEmbed(channelID, buildGiveawayEmbed(view), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to post announcement: %w", err)
	}
	return msg.ID, nil
}

func (c *Client) UpdateAnnouncement(ctx context.Context, channelID, messageID string, view *models.GiveawayView) error {
	_, err := c.session.ChannelMessageEditEmbed(channelID, messageID, buildGiveawayEmbed(view), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit announcement: %w", err)
	}
	return nil
}

func (c *Client) PostWinnersMessage(ctx context.Context, channelID, text string) error {
	_, err := c.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post winners message: %w", err)
	}
	return nil
}

func (c *Client) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	member, err := c.member(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	return member.Roles, nil
}

func (c *Client) MemberJoinedAt(ctx context.Context, guildID, userID string) (time.Time, error) {
	member, err := c.member(ctx, guildID, userID)
	if err != nil {
		return time.Time{}, err
	}
	return member.JoinedAt, nil
}

// DirectMessage opens (or reuses) the DM channel with the user and sends
// text into it.
func (c *Client) DirectMessage(ctx context.Context, userID, text string) error {
	channel, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := c.session.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// member checks the state cache before hitting the REST API.
func (c *Client) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if c.session.State != nil {
		if member, err := c.session.State.Member(guildID, userID); err == nil {
			return member, nil
		}
	}

	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild member: %w", err)
	}
	return member, nil
}
