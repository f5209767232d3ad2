package fonts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownWeight is returned for thickness tokens that are neither a
// keyword nor a numeric weight between 100 and 900.
var ErrUnknownWeight = errors.New("unknown font weight")

// Weight is a CSS style numeric font weight.
type Weight int

const (
	WeightLight  Weight = 300
	WeightNormal Weight = 400
	WeightMedium Weight = 500
	WeightBold   Weight = 700
	WeightBolder Weight = 800
)

// ParseWeight converts a thickness token ("normal", "bold", "lighter",
// "bolder" or "100".."900") into a Weight. The empty token is normal.
func ParseWeight(token string) (Weight, error) {
	switch t := strings.ToLower(strings.TrimSpace(token)); t {
	case "", "normal":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	case "lighter":
		return WeightLight, nil
	case "bolder":
		return WeightBolder, nil
	default:
		v, err := strconv.Atoi(t)
		if err != nil || v < 100 || v > 900 || v%100 != 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownWeight, token)
		}
		return Weight(v), nil
	}
}

func (w Weight) String() string {
	return strconv.Itoa(int(w))
}
