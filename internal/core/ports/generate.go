package ports

//go:generate mockgen -source=collaborators.go -destination=mocks/collaborators_mock.go -package=mocks
//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks
//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks
//go:generate mockgen -source=health.go -destination=mocks/health_mock.go -package=mocks
