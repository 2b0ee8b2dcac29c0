package mocks

//go:generate sh -c "go run go.uber.org/mock/mockgen -package mocks -destination clock.go github.com/tlsconf-go/tlsconf-go/internal/utils Clock"
