package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/schedule --output domain/schedule --outpkg schedulemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/pick --output domain/pick --outpkg pickmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/result --output domain/result --outpkg resultmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SurvivorRepository --dir ../domain/result --output domain/result --outpkg resultmock --filename survivor_repository_mock.go
