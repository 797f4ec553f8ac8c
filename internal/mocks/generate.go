package mocks

//go:generate mockery --name RecordStore --srcpkg github.com/fraymodernizacion/control-transito/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
