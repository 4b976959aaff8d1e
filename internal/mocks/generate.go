package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/importqueue --output domain/importqueue --outpkg importqueuemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/gamerow --output domain/gamerow --outpkg gamerowmock --filename repository_mock.go
