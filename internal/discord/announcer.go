package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// messageSender is the slice of discordgo.Session the announcer needs.
// Tests swap in a stub so no gateway connection is required.
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts achievement unlocks and pillar level-ups to a community
// channel. It subscribes to the in-process event bus, so announcements fire
// on the same events that drive the dashboard stream.
type Announcer struct {
	session     *discordgo.Session
	sender      messageSender
	channelID   string
	userService user.Service
}

// NewAnnouncer creates an announcer bound to the given channel.
func NewAnnouncer(token, channelID string, userService user.Service) (*Announcer, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}

	return &Announcer{
		session:     session,
		sender:      session,
		channelID:   channelID,
		userService: userService,
	}, nil
}

// Start opens the gateway connection so the bot shows up in the member list.
func (a *Announcer) Start() error {
	a.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info(LogMsgAnnouncerStarted, "user", s.State.User.Username)
	})

	if err := a.session.Open(); err != nil {
		return fmt.Errorf(ErrMsgOpenSession, err)
	}
	return nil
}

// Stop closes the gateway connection.
func (a *Announcer) Stop() error {
	err := a.session.Close()
	slog.Info(LogMsgAnnouncerStopped)
	return err
}

// Subscribe registers the announcer for the events it reports on.
func (a *Announcer) Subscribe(bus event.Bus) {
	bus.Subscribe(event.AchievementUnlocked, a.handleAchievementUnlocked)
	bus.Subscribe(event.LevelUp, a.handleLevelUp)
}

// handleAchievementUnlocked posts an unlock card. Unlocks produced by
// simulation runs are skipped so the community channel only sees real play.
func (a *Announcer) handleAchievementUnlocked(ctx context.Context, evt event.Event) error {
	if a.channelID == "" {
		return nil
	}

	if src, ok := evt.GetMetadataValue(domain.MetadataKeySource).(string); ok && src == domain.SourceScenario {
		return nil
	}

	payload, err := event.DecodePayload[domain.AchievementUnlockedPayload](evt)
	if err != nil {
		slog.Warn(LogMsgPayloadDecodeFailed, "error", err, "event_type", evt.Type)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Achievement Unlocked: %s", payload.Title),
		Description: a.unlockDescription(ctx, payload),
		Color:       rarityColor(payload.Rarity),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: formatLabel(payload.Tier), Inline: true},
			{Name: "Rarity", Value: formatLabel(payload.Rarity), Inline: true},
			{Name: "Points", Value: fmt.Sprintf("%d", payload.Points), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterAchievements,
		},
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		slog.Error(LogMsgAnnouncementFailed, "error", err, "event_type", evt.Type)
		return err
	}

	slog.Info(LogMsgAnnouncementSent,
		"event_type", evt.Type,
		"user_id", payload.UserID,
		"achievement_id", payload.AchievementID)
	return nil
}

// handleLevelUp posts a level-up card.
func (a *Announcer) handleLevelUp(ctx context.Context, evt event.Event) error {
	if a.channelID == "" {
		return nil
	}

	payload, err := event.DecodePayload[domain.LevelUpPayload](evt)
	if err != nil {
		slog.Warn(LogMsgPayloadDecodeFailed, "error", err, "event_type", evt.Type)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Level Up! %s", formatLabel(payload.Pillar)),
		Description: fmt.Sprintf("%s reached **level %d** in %s and earned the title **%s**!",
			a.mention(ctx, payload.UserID), payload.NewLevel, formatLabel(payload.Pillar), payload.Title),
		Color: ColorLevelUp,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Pillar", Value: formatLabel(payload.Pillar), Inline: true},
			{Name: "New Level", Value: fmt.Sprintf("%d", payload.NewLevel), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterProgression,
		},
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		slog.Error(LogMsgAnnouncementFailed, "error", err, "event_type", evt.Type)
		return err
	}

	slog.Info(LogMsgAnnouncementSent,
		"event_type", evt.Type,
		"user_id", payload.UserID,
		"pillar", payload.Pillar,
		"new_level", payload.NewLevel)
	return nil
}

func (a *Announcer) unlockDescription(ctx context.Context, payload domain.AchievementUnlockedPayload) string {
	message := payload.UnlockMessage
	if message == "" {
		message = fmt.Sprintf("**%s** has been unlocked!", payload.Title)
	}
	return fmt.Sprintf("%s\n\n%s", a.mention(ctx, payload.UserID), message)
}

// mention resolves an athlete to a Discord mention when their account is
// linked, or their bold username when it is not.
func (a *Announcer) mention(ctx context.Context, userID string) string {
	athlete, err := a.userService.GetAthlete(ctx, userID)
	if err != nil {
		slog.Warn(LogMsgAthleteLookupFailed, "error", err, "user_id", userID)
		return "An athlete"
	}
	if athlete.DiscordID != "" {
		return fmt.Sprintf("<@%s>", athlete.DiscordID)
	}
	return fmt.Sprintf("**%s**", athlete.Username)
}

func rarityColor(rarity string) int {
	switch rarity {
	case "legendary":
		return ColorLegendary
	case "epic":
		return ColorEpic
	case "rare":
		return ColorRare
	default:
		return ColorCommon
	}
}

// formatLabel converts a snake_case value to Title Case for display.
// Casers are stateful, so one is built per call rather than shared.
func formatLabel(value string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}
