package eth1

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
)

// LoadOperators fetches every operator and its signing keys from the
// registry. Operators are loaded across a bounded worker pool; key order
// within an operator follows the on-chain index order, and the returned
// roster is ordered by operator id.
func LoadOperators(ctx context.Context, logger *zap.Logger, reader Reader, concurrency int) ([]registry.Operator, error) {
	count, err := reader.GetNodeOperatorsCount(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("loading operators from the registry", zap.Uint64("count", count))

	operators := make([]registry.Operator, count)

	eg, egCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for id := uint64(0); id < count; id++ {
		eg.Go(func() error {
			operator, err := loadOperator(egCtx, reader, id)
			if err != nil {
				return err
			}
			operators[id] = operator
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Info("loaded operator signing keys", zap.Int("keys", registry.CountKeys(operators)))

	return operators, nil
}

func loadOperator(ctx context.Context, reader Reader, id uint64) (registry.Operator, error) {
	operator, err := reader.GetNodeOperator(ctx, id)
	if err != nil {
		return registry.Operator{}, err
	}

	operator.Keys = make([]registry.Key, 0, operator.TotalSigningKeys)
	for index := uint64(0); index < operator.TotalSigningKeys; index++ {
		key, err := reader.GetSigningKey(ctx, id, index)
		if err != nil {
			return registry.Operator{}, errors.Wrapf(err, "operator %d", id)
		}
		operator.Keys = append(operator.Keys, key)
	}

	return operator, nil
}
