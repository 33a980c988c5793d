package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/apperrors"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/domain"
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/dto"
	"github.com/nicanornicolas/kipsrealityweb-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrUnbalancedEntry   = errors.New("journal debits and credits do not balance")
	ErrJournalMinEntries = errors.New("journal must have at least two lines across two accounts")
	ErrUnknownAccount    = errors.New("journal line references an unknown account code")
	ErrInactiveAccount   = errors.New("journal line references a deactivated account")
	ErrLineSideInvalid   = errors.New("journal line must carry exactly one non-negative side")
	ErrAlreadyReversed   = errors.New("journal has already been reversed")
)

const (
	defaultJournalListLimit = 20
	maxJournalListLimit     = 100
)

// journalService is the posting engine: it validates, balances, and persists
// journal entries, and creates reversing entries for corrections.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	entityRepo  portsrepo.EntityReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, entityRepo portsrepo.EntityReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		entityRepo:  entityRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines checks the structural rules of a posting request: at least
// two lines touching at least two accounts, each line carrying exactly one
// non-negative side, and debit and credit totals that balance within
// MonetaryTolerance.
func (s *journalService) validateLines(lines []dto.JournalLineRequest) error {
	if len(lines) < 2 {
		return ErrJournalMinEntries
	}
	distinct := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		distinct[line.AccountCode] = struct{}{}
	}
	if len(distinct) < 2 {
		return fmt.Errorf("%w: all lines reference account %s", ErrJournalMinEntries, lines[0].AccountCode)
	}

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrLineSideInvalid, i)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			// Both sides set, or neither.
			return fmt.Errorf("%w: line %d (account %s)", ErrLineSideInvalid, i, line.AccountCode)
		}
	}

	debits, credits := decimalSums(lines)
	if !domain.WithinMonetaryTolerance(debits, credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// resolveAccounts maps the request's account codes to active accounts of the
// entity, failing on any unknown or deactivated code.
func (s *journalService) resolveAccounts(ctx context.Context, entityID string, lines []dto.JournalLineRequest) (map[string]domain.Account, error) {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountCode]; ok {
			continue
		}
		seen[line.AccountCode] = struct{}{}
		codes = append(codes, line.AccountCode)
	}

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, entityID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account codes: %w", err)
	}
	for _, code := range codes {
		account, ok := accounts[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrInactiveAccount, code)
		}
	}
	return accounts, nil
}

// PostJournal validates and atomically persists a balanced journal entry.
// Persisted entries are append-only; corrections go through ReverseJournal.
func (s *journalService) PostJournal(ctx context.Context, entityID string, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.validateLines(req.Lines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entity %s: %w", entityID, err)
	}

	accounts, err := s.resolveAccounts(ctx, entityID, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	journal := domain.JournalEntry{
		JournalID:      uuid.NewString(),
		EntityID:       entityID,
		OrganizationID: entity.OrganizationID,
		Date:           req.Date,
		Description:    req.Description,
		Reference:      req.Reference,
		Status:         domain.Posted,
		AuditFields:    audit,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		account := accounts[lineReq.AccountCode]
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journal.JournalID,
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Memo:        lineReq.Memo,
			AuditFields: audit,
		}
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to post journal: %w", err)
	}

	journal.Lines = lines
	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("entity_id", entityID),
		slog.Int("lines", len(lines)))
	return &journal, nil
}

// GetJournalByID retrieves a journal with its lines, scoped to the entity.
func (s *journalService) GetJournalByID(ctx context.Context, entityID string, journalID string) (*domain.JournalEntry, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.EntityID != entityID {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}

	if len(journal.Lines) == 0 {
		lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
		}
		journal.Lines = lines
	}
	return journal, nil
}

// ListJournals retrieves a paginated list of journals in an entity.
func (s *journalService) ListJournals(ctx context.Context, entityID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalListLimit
	}
	if limit > maxJournalListLimit {
		limit = maxJournalListLimit
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByEntity(ctx, entityID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list journals for entity %s: %w", entityID, err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}

// ReverseJournal creates a mirror-image entry that cancels the original:
// every debit becomes a credit and vice versa. The original is marked
// REVERSED and linked to its reversal; its lines are never touched.
func (s *journalService) ReverseJournal(ctx context.Context, entityID string, journalID string, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetJournalByID(ctx, entityID, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: journal %s", ErrAlreadyReversed, journalID)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversal := domain.JournalEntry{
		JournalID:         uuid.NewString(),
		EntityID:          original.EntityID,
		OrganizationID:    original.OrganizationID,
		Date:              now,
		Description:       fmt.Sprintf("Reversal of journal %s: %s", original.JournalID, original.Description),
		Reference:         original.Reference,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields:       audit,
	}

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   reversal.JournalID,
			AccountID:   line.AccountID,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Memo:        line.Memo,
			AuditFields: audit,
		}
	}

	if err := s.journalRepo.SaveJournal(ctx, reversal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save reversing journal", slog.String("original_journal_id", journalID))
		return nil, fmt.Errorf("failed to reverse journal %s: %w", journalID, err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &reversal.JournalID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark original journal as reversed",
			slog.String("original_journal_id", journalID),
			slog.String("reversing_journal_id", reversal.JournalID))
		return nil, fmt.Errorf("failed to link reversal for journal %s: %w", journalID, err)
	}

	reversal.Lines = lines
	s.LogInfo(ctx, "Journal reversed",
		slog.String("original_journal_id", journalID),
		slog.String("reversing_journal_id", reversal.JournalID))
	return &reversal, nil
}

func decimalSums(lines []dto.JournalLineRequest) (debits, credits decimal.Decimal) {
	domainLines := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.JournalLine{Debit: l.Debit, Credit: l.Credit}
	}
	return accounting.SumLines(domainLines)
}
