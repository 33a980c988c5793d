package repositories

// RepositoryProvider bundles the repository facades handed to the service
// layer at startup. Construction happens in the pgsql package; tests swap in
// mocks per facade.
type RepositoryProvider struct {
	EntityRepo  EntityRepositoryFacade
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryFacade
	UtilityRepo UtilityRepositoryFacade
}
