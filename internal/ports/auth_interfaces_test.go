package ports_test

import (
	"testing"

	"github.com/target/garage-api/internal/data"
	"github.com/target/garage-api/internal/data/cryptoutil"
	mocks "github.com/target/garage-api/internal/mocks/auth"
	"github.com/target/garage-api/internal/ports"
)

// This test only verifies that implementations conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.SessionStore = (*data.SessionRepo)(nil)
	var _ ports.CredentialCodec = (*mocks.StaticCodec)(nil)
	var _ ports.PasswordHasher = (*cryptoutil.BcryptHasher)(nil)
	var _ ports.PasswordHasher = mocks.PlainHasher{}
	var _ ports.Encryptor = (*cryptoutil.AESGCMEncryptor)(nil)
	var _ ports.Clock = data.RealTimeProvider{}
	var _ ports.Clock = (*data.FixedTimeProvider)(nil)
}
