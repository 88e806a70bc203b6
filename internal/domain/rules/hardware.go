package rules

import (
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

const (
	msgMissingBinding   = "missing hardware address binding (AT %I, %Q, %M) for physical variables in a PROGRAM unit"
	descHardwareMapping = "Warns when a PROGRAM binds no variable to a physical address with AT %"
)

// HardwareMappingRule is case-sensitive and document-wide: one AT % binding
// anywhere silences it.
type HardwareMappingRule struct{}

func (HardwareMappingRule) Name() string        { return domain.RuleHardwareMapping }
func (HardwareMappingRule) Description() string { return descHardwareMapping }

func (HardwareMappingRule) Check(source string) ([]domain.Issue, error) {
	if strings.Contains(source, "PROGRAM") && !strings.Contains(source, "AT %") {
		return []domain.Issue{
			domain.NewWarning(domain.RuleHardwareMapping, domain.DocumentLine, msgMissingBinding),
		}, nil
	}
	return nil, nil
}
