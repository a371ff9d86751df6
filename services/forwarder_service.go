package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/PGV-da/Amazon-Affiliate-Bot/domain"
)

// Consumer-side interfaces
type Publisher interface {
	Publish(ctx context.Context, chatID int64, msg domain.OutboundMessage) domain.PublishResult
}

type Shortener interface {
	Shorten(ctx context.Context, longURL string) string
}

type DedupStore interface {
	Contains(ctx context.Context, key string) bool
	Record(ctx context.Context, key string)
}

type Alerter interface {
	SendAlert(ctx context.Context, text string)
}

// ForwarderService runs the per-message pipeline: extract Amazon links,
// rewrite the affiliate tag, shorten, dedup by product key, perturb the text
// and publish to the target channel with rate-limit backoff.
type ForwarderService struct {
	publisher     Publisher
	shortener     Shortener
	dedup         DedupStore
	alerter       Alerter
	rewriter      *TagRewriter
	perturber     *Perturber
	targetChannel int64

	sleep     func(ctx context.Context, d time.Duration)
	sendDelay func() time.Duration
}

// Functional Options Pattern
type ForwarderOption func(*ForwarderService)

func WithPublisher(p Publisher) ForwarderOption {
	return func(s *ForwarderService) { s.publisher = p }
}

func WithShortener(c Shortener) ForwarderOption {
	return func(s *ForwarderService) { s.shortener = c }
}

func WithDedupStore(d DedupStore) ForwarderOption {
	return func(s *ForwarderService) { s.dedup = d }
}

func WithAlerter(a Alerter) ForwarderOption {
	return func(s *ForwarderService) { s.alerter = a }
}

func WithTagRewriter(r *TagRewriter) ForwarderOption {
	return func(s *ForwarderService) { s.rewriter = r }
}

func WithPerturber(p *Perturber) ForwarderOption {
	return func(s *ForwarderService) { s.perturber = p }
}

func WithTargetChannel(chatID int64) ForwarderOption {
	return func(s *ForwarderService) { s.targetChannel = chatID }
}

func NewForwarderService(opts ...ForwarderOption) *ForwarderService {
	s := &ForwarderService{
		sleep: sleepCtx,
		// Wait a random 2-5 seconds before publishing to act more human.
		sendDelay: func() time.Duration {
			return 2*time.Second + time.Duration(rand.Int63n(int64(3*time.Second)))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// ProcessMessage runs one inbound message through the pipeline to completion,
// including any rate-limit backoff. A panic is contained here so a malformed
// message never halts processing of subsequent ones.
func (s *ForwarderService) ProcessMessage(ctx context.Context, msg domain.InboundMessage) (outcome domain.ForwardOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic while processing message from %d: %v", msg.ChatID, r)
			s.alert(ctx, fmt.Sprintf("panic while processing message: %v", r))
			outcome = domain.OutcomeFailed
		}
	}()

	urls := ExtractProductURLs(msg.Text)
	if len(urls) == 0 {
		return domain.OutcomeDropped
	}

	newText := msg.Text
	postedAny := false
	for _, u := range urls {
		key := ProductKey(u)
		if s.dedup.Contains(ctx, key) {
			continue
		}

		affURL := s.rewriter.ApplyTag(u)
		shortURL := s.shortener.Shorten(ctx, affURL)
		newText = strings.Replace(newText, u, shortURL, 1)

		// Record before publish: a failed publish means a missed repost,
		// never a duplicate.
		s.dedup.Record(ctx, key)
		postedAny = true
	}

	if !postedAny {
		return domain.OutcomeDropped
	}

	caption := s.perturber.Perturb(newText)
	out := domain.OutboundMessage{Text: caption, Media: msg.Media}

	s.sleep(ctx, s.sendDelay())

	for {
		res := s.publisher.Publish(ctx, s.targetChannel, out)
		switch res.Status {
		case domain.PublishOK:
			return domain.OutcomePublished
		case domain.PublishRateLimited:
			log.Printf("rate limited: sleeping %s before retrying publish", res.RetryAfter)
			s.sleep(ctx, res.RetryAfter)
			if ctx.Err() != nil {
				return domain.OutcomeFailed
			}
		default:
			log.Printf("failed to publish message: %v", res.Err)
			s.alert(ctx, fmt.Sprintf("failed to publish message: %v", res.Err))
			return domain.OutcomeFailed
		}
	}
}

func (s *ForwarderService) alert(ctx context.Context, text string) {
	if s.alerter != nil {
		s.alerter.SendAlert(ctx, text)
	}
}
