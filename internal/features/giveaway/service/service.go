package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "giveaway-bot-backend/internal/common/errors"
	"giveaway-bot-backend/internal/common/logger"
	"giveaway-bot-backend/internal/features/giveaway/models"
	"giveaway-bot-backend/internal/features/giveaway/repository"
	memberservice "giveaway-bot-backend/internal/features/member/service"
)

type giveawayService struct {
	repo      repository.GiveawayRepository
	members   memberservice.MemberService
	announcer Announcer
	cache     ViewCache
	cacheTTL  time.Duration
}

func NewGiveawayService(
	repo repository.GiveawayRepository,
	members memberservice.MemberService,
	announcer Announcer,
	cacheService ViewCache,
	cacheTTL time.Duration,
) GiveawayService {
	return &giveawayService{
		repo:      repo,
		members:   members,
		announcer: announcer,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
	}
}

// Create validates the command, persists the giveaway and posts the
// announcement. Persistence happens first; a failed announcement leaves the
// giveaway live with an empty message ID.
func (s *giveawayService) Create(ctx context.Context, create *models.GiveawayCreate) (*models.GiveawayResponse, error) {
	duration, err := models.ParseGiveawayDuration(create.Duration)
	if err != nil {
		return nil, apperrors.NewValidationError("duration", err.Error())
	}
	if err := create.Requirements.Validate(); err != nil {
		return nil, apperrors.NewValidationError("requirements", err.Error())
	}

	now := time.Now().UTC()
	giveaway := &models.Giveaway{
		ID:           uuid.New().String(),
		GuildID:      create.GuildID,
		ChannelID:    create.ChannelID,
		Prize:        create.Prize,
		Description:  create.Description,
		HostID:       create.HostID,
		HostName:     create.HostName,
		WinnersCount: models.ClampWinnersCount(create.WinnersCount),
		StartedAt:    now,
		EndsAt:       now.Add(duration),
		Requirements: create.Requirements,
	}

	if err := s.repo.Create(ctx, giveaway); err != nil {
		return nil, apperrors.NewDatabaseError("create giveaway", err)
	}

	messageID, err := s.announcer.PostAnnouncement(ctx, giveaway.ChannelID, giveaway.ToView())
	if err != nil {
		logger.Warn().
			Str("giveaway_id", giveaway.ID).
			Str("channel_id", giveaway.ChannelID).
			Err(err).
			Msg("Failed to post giveaway announcement")
	} else {
		giveaway.MessageID = messageID
		if err := s.repo.SetMessageID(ctx, giveaway.ID, messageID); err != nil {
			logger.Error().
				Str("giveaway_id", giveaway.ID).
				Err(err).
				Msg("Failed to store announcement message ID")
		}
	}

	giveawaysCreated.Inc()
	logger.Info().
		Str("giveaway_id", giveaway.ID).
		Str("guild_id", giveaway.GuildID).
		Str("prize", giveaway.Prize).
		Time("ends_at", giveaway.EndsAt).
		Msg("Giveaway created")

	return giveaway.ToResponse(), nil
}

func (s *giveawayService) GetByID(ctx context.Context, id string) (*models.GiveawayResponse, error) {
	var response models.GiveawayResponse

	cacheKey := fmt.Sprintf("view:giveaway:%s", id)
	err := s.cache.GetOrSet(ctx, cacheKey, &response, s.cacheTTL, func() (interface{}, error) {
		giveaway, err := s.getGiveaway(ctx, id)
		if err != nil {
			return nil, err
		}
		return giveaway.ToResponse(), nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *giveawayService) GetByMessageID(ctx context.Context, messageID string) (*models.GiveawayResponse, error) {
	giveaway, err := s.repo.GetByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrGiveawayNotFound) {
			return nil, apperrors.NewGiveawayNotFoundError(messageID)
		}
		return nil, apperrors.NewDatabaseError("get giveaway by message", err)
	}
	return giveaway.ToResponse(), nil
}

func (s *giveawayService) GetByGuild(ctx context.Context, guildID string) ([]*models.GiveawayResponse, error) {
	var responses []*models.GiveawayResponse

	cacheKey := fmt.Sprintf("view:guild_giveaways:%s", guildID)
	err := s.cache.GetOrSet(ctx, cacheKey, &responses, s.cacheTTL, func() (interface{}, error) {
		giveaways, err := s.repo.GetByGuild(ctx, guildID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list guild giveaways", err)
		}
		out := make([]*models.GiveawayResponse, 0, len(giveaways))
		for _, g := range giveaways {
			out = append(out, g.ToResponse())
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ToggleEntry enters the user if they are not in the entry set and withdraws
// them if they are. Eligibility is evaluated on entry only; withdrawal is
// always allowed.
func (s *giveawayService) ToggleEntry(ctx context.Context, giveawayID, userID string) (*models.EntryResult, error) {
	giveaway, err := s.getGiveaway(ctx, giveawayID)
	if err != nil {
		return nil, err
	}
	if giveaway.Ended {
		return nil, apperrors.New(apperrors.ErrCodeGiveawayEnded, "This giveaway has already ended")
	}

	if giveaway.HasEntered(userID) {
		_, total, err := s.repo.RemoveEntry(ctx, giveawayID, userID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("remove entry", err)
		}
		entryToggles.WithLabelValues(entryOutcomeWithdrawn).Inc()
		s.refreshAnnouncement(ctx, giveawayID)
		return &models.EntryResult{Entered: false, TotalEntries: total}, nil
	}

	result, err := s.checkEligibility(ctx, giveaway, userID)
	if err != nil {
		return nil, err
	}
	if !result.Eligible {
		entryToggles.WithLabelValues(entryOutcomeDenied).Inc()
		return &models.EntryResult{
			Entered:      false,
			TotalEntries: len(giveaway.Entries),
			Denied:       true,
			Reason:       result.Reason,
		}, nil
	}

	_, total, err := s.repo.AddEntry(ctx, giveawayID, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("add entry", err)
	}
	entryToggles.WithLabelValues(entryOutcomeEntered).Inc()
	s.refreshAnnouncement(ctx, giveawayID)
	return &models.EntryResult{Entered: true, TotalEntries: total}, nil
}

func (s *giveawayService) checkEligibility(ctx context.Context, giveaway *models.Giveaway, userID string) (EligibilityResult, error) {
	if giveaway.Requirements.IsZero() {
		return eligible(), nil
	}

	roles, err := s.members.GetRoles(ctx, giveaway.GuildID, userID)
	if err != nil {
		return EligibilityResult{}, apperrors.NewDiscordAPIError("resolve member roles", err)
	}
	snapshot, err := s.members.GetSnapshot(ctx, giveaway.GuildID, userID)
	if err != nil {
		return EligibilityResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to resolve member snapshot")
	}

	return EvaluateEligibility(giveaway.Requirements, roles, snapshot, time.Now().UTC()), nil
}

// End performs the one-shot Active -> Ended transition. The repository guard
// makes it idempotent: a second call for the same giveaway reports
// AlreadyEnded with the recorded winners and changes nothing.
func (s *giveawayService) End(ctx context.Context, giveawayID string) (*models.EndResult, error) {
	giveaway, err := s.getGiveaway(ctx, giveawayID)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.repo.MarkEnded(ctx, giveawayID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("mark giveaway ended", err)
	}
	if !transitioned {
		ended, err := s.getGiveaway(ctx, giveawayID)
		if err != nil {
			return nil, err
		}
		return &models.EndResult{
			GiveawayID:   giveawayID,
			WinnerIDs:    ended.WinnerIDs,
			EntriesCount: len(ended.Entries),
			AlreadyEnded: true,
		}, nil
	}

	// Reload the entry set as of the transition; a withdrawal racing the
	// end must not leave a winner who is no longer entered.
	entries, err := s.repo.GetEntries(ctx, giveawayID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load entries", err)
	}
	giveaway.Entries = entries

	winners := selectWinners(entries, giveaway.WinnersCount)
	if len(winners) > 0 {
		if err := s.repo.AppendWinners(ctx, giveawayID, winners); err != nil {
			return nil, apperrors.NewDatabaseError("store winners", err)
		}
	}

	giveaway.Ended = true
	giveaway.WinnerIDs = winners

	giveawaysEnded.Inc()
	entriesAtEnd.Observe(float64(len(giveaway.Entries)))
	logger.Info().
		Str("giveaway_id", giveawayID).
		Int("entries", len(giveaway.Entries)).
		Int("winners", len(winners)).
		Msg("Giveaway ended")

	s.invalidateViews(ctx, giveawayID)
	s.renderEnded(ctx, giveaway, winners)
	s.rewardWinners(ctx, giveaway, winners)

	return &models.EndResult{
		GiveawayID:   giveawayID,
		WinnerIDs:    winners,
		EntriesCount: len(giveaway.Entries),
	}, nil
}

// Reroll draws replacement winners from the entrants who have not won yet.
// It only applies to ended giveaways and fails without touching state when
// the pool is empty.
func (s *giveawayService) Reroll(ctx context.Context, giveawayID string, count int) (*models.RerollResult, error) {
	giveaway, err := s.getGiveaway(ctx, giveawayID)
	if err != nil {
		return nil, err
	}
	if !giveaway.Ended {
		return nil, apperrors.New(apperrors.ErrCodeGiveawayActive, "Cannot reroll a giveaway that has not ended")
	}

	pool := giveaway.RerollPool()
	if len(pool) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyRerollPool, "No entrants left to reroll from")
	}

	if count < 1 {
		count = 1
	}
	newWinners := selectWinners(pool, count)

	if err := s.repo.AppendWinners(ctx, giveawayID, newWinners); err != nil {
		return nil, apperrors.NewDatabaseError("store rerolled winners", err)
	}
	giveaway.WinnerIDs = append(giveaway.WinnerIDs, newWinners...)

	giveawayRerolls.Inc()
	logger.Info().
		Str("giveaway_id", giveawayID).
		Int("new_winners", len(newWinners)).
		Msg("Giveaway rerolled")

	s.invalidateViews(ctx, giveawayID)
	s.renderEnded(ctx, giveaway, newWinners)
	s.rewardWinners(ctx, giveaway, newWinners)

	return &models.RerollResult{GiveawayID: giveawayID, NewWinners: newWinners}, nil
}

// RerollByMessage rerolls a giveaway addressed by its announcement message,
// the way reroll commands reference it in chat. Only ended giveaways are
// resolvable through this path.
func (s *giveawayService) RerollByMessage(ctx context.Context, messageID string, count int) (*models.RerollResult, error) {
	giveaway, err := s.repo.GetEndedByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrGiveawayNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeGiveawayNotFound, "No ended giveaway found for this message")
		}
		return nil, apperrors.NewDatabaseError("get ended giveaway by message", err)
	}
	return s.Reroll(ctx, giveaway.ID, count)
}

// EndDue ends every overdue giveaway one at a time. A failure on one
// giveaway is logged and does not stop the sweep.
func (s *giveawayService) EndDue(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.repo.GetActiveDueBy(ctx, now)
	if err != nil {
		return 0, apperrors.NewDatabaseError("list due giveaways", err)
	}

	ended := 0
	for _, id := range ids {
		result, err := s.End(ctx, id)
		if err != nil {
			logger.Error().
				Str("giveaway_id", id).
				Err(err).
				Msg("Failed to end due giveaway")
			continue
		}
		if !result.AlreadyEnded {
			ended++
		}
	}
	return ended, nil
}

func (s *giveawayService) getGiveaway(ctx context.Context, id string) (*models.Giveaway, error) {
	giveaway, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGiveawayNotFound) {
			return nil, apperrors.NewGiveawayNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get giveaway", err)
	}
	return giveaway, nil
}

func (s *giveawayService) invalidateViews(ctx context.Context, giveawayID string) {
	if err := s.cache.InvalidateGiveaway(ctx, giveawayID); err != nil {
		logger.Warn().
			Str("giveaway_id", giveawayID).
			Err(err).
			Msg("Failed to invalidate cached views")
	}
}

// refreshAnnouncement re-renders the announcement with the current entry
// count. Best-effort.
func (s *giveawayService) refreshAnnouncement(ctx context.Context, giveawayID string) {
	s.invalidateViews(ctx, giveawayID)

	giveaway, err := s.getGiveaway(ctx, giveawayID)
	if err != nil {
		logger.Warn().Str("giveaway_id", giveawayID).Err(err).Msg("Failed to reload giveaway for re-render")
		return
	}
	if giveaway.MessageID == "" {
		return
	}
	if err := s.announcer.UpdateAnnouncement(ctx, giveaway.ChannelID, giveaway.MessageID, giveaway.ToView()); err != nil {
		logger.Warn().
			Str("giveaway_id", giveawayID).
			Err(err).
			Msg("Failed to update giveaway announcement")
	}
}

// renderEnded rewrites the announcement in its terminal form and posts the
// winners message. Both calls are best-effort.
func (s *giveawayService) renderEnded(ctx context.Context, giveaway *models.Giveaway, winners []string) {
	if giveaway.MessageID != "" {
		if err := s.announcer.UpdateAnnouncement(ctx, giveaway.ChannelID, giveaway.MessageID, giveaway.ToView()); err != nil {
			logger.Warn().
				Str("giveaway_id", giveaway.ID).
				Err(err).
				Msg("Failed to render ended announcement")
		}
	}

	text := winnersMessage(giveaway.Prize, winners)
	if err := s.announcer.PostWinnersMessage(ctx, giveaway.ChannelID, text); err != nil {
		logger.Warn().
			Str("giveaway_id", giveaway.ID).
			Err(err).
			Msg("Failed to post winners message")
	}
}

// rewardWinners bumps each winner's win counter and sends them a direct
// message. Both are best-effort per winner.
func (s *giveawayService) rewardWinners(ctx context.Context, giveaway *models.Giveaway, winners []string) {
	for _, userID := range winners {
		if err := s.members.IncrementGiveawaysWon(ctx, giveaway.GuildID, userID); err != nil {
			logger.Warn().
				Str("giveaway_id", giveaway.ID).
				Str("user_id", userID).
				Err(err).
				Msg("Failed to record giveaway win")
		}
		text := fmt.Sprintf("Congratulations! You won **%s**.", giveaway.Prize)
		if err := s.members.NotifyDirect(ctx, userID, text); err != nil {
			logger.Debug().
				Str("giveaway_id", giveaway.ID).
				Str("user_id", userID).
				Err(err).
				Msg("Failed to DM winner")
		}
	}
}

func winnersMessage(prize string, winners []string) string {
	if len(winners) == 0 {
		return fmt.Sprintf("No one entered the giveaway for **%s**, so there are no winners.", prize)
	}

	mentions := make([]string, 0, len(winners))
	for _, id := range winners {
		mentions = append(mentions, fmt.Sprintf("<@%s>", id))
	}
	return fmt.Sprintf("Congratulations %s! You won **%s**!", strings.Join(mentions, ", "), prize)
}
