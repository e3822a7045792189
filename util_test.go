package linreg

import "fmt"

func wrap(err error) error {
	return fmt.Errorf("context, %w", err)
}
