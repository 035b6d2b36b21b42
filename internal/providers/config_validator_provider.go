package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"credd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules and then the cross-field checks the tags cannot express.
func (v *CnfValidator) Validate() error {
	vd := validate.Struct(v.conf)
	if !vd.Validate() {
		return fmt.Errorf("invalid config: %s", vd.Errors.Error())
	}

	s := v.conf.Scoring
	if s.UnclearThreshold > s.VerifiedThreshold {
		return fmt.Errorf("invalid config: scoring.unclearThreshold (%d) exceeds scoring.verifiedThreshold (%d)",
			s.UnclearThreshold, s.VerifiedThreshold)
	}
	if s.MaxConfidence > 1 {
		return fmt.Errorf("invalid config: scoring.maxConfidence must not exceed 1")
	}
	if v.conf.Cache.Driver == "redis" && v.conf.Cache.Redis.Addr == "" {
		return fmt.Errorf("invalid config: cache.redis.addr is required for the redis driver")
	}
	if v.conf.Persistence.S3.Enabled && v.conf.Persistence.S3.Bucket == "" {
		return fmt.Errorf("invalid config: persistence.s3.bucket is required when s3 upload is enabled")
	}
	return nil
}
