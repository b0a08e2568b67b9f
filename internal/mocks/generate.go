package mocks

//go:generate mockery --name Repository --srcpkg github.com/smottahedi/find-political-donors/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
