package services

import (
	portsrepo "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/repositories"
	portssvc "github.com/nicanornicolas/kipsrealityweb-sub002/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// The journal service is shared with the utility service so bill posting
// goes through the same validation path as direct postings.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.EntityRepo)
	return &portssvc.ServiceContainer{
		Setup:     NewSetupService(repos.EntityRepo),
		Account:   NewAccountService(repos.AccountRepo),
		Journal:   journalSvc,
		Utility:   NewUtilityService(repos.UtilityRepo, journalSvc),
		Reporting: NewReportingService(repos.AccountRepo),
	}
}
