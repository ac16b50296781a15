package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/summoner --output domain/summoner --outpkg summonermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name InvalidQueryRepository --dir ../domain/summoner --output domain/summoner --outpkg summonermock --filename invalid_query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/staticdata --output domain/staticdata --outpkg staticdatamock --filename repository_mock.go
