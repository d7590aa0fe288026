package main

import (
	"testing"

	"github.com/joeycumines/go-ppsmc/internal/fsmbdd"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	args, err := ParseArgs([]string{"-file", "model.smv"})
	require.NoError(t, err)
	require.Equal(t, "model.smv", args.File)
	require.Equal(t, AlgorithmPropertyDriven, args.Algorithm)
	require.Equal(t, TransMonolithic, args.TransMethod)
	require.Equal(t, 1, args.Parallel)
	require.Empty(t, args.LtlExtendTrans)
	require.Empty(t, args.LtlExtendVars)
	require.False(t, args.Verbose)
	require.False(t, args.OldImpl)
	require.False(t, args.GeneralizeAutomata)
	require.False(t, args.FlattenDefine)
}

func TestParseArgsRequiresFile(t *testing.T) {
	_, err := ParseArgs(nil)
	require.Error(t, err)
}

func TestParseArgsFullFlagSet(t *testing.T) {
	args, err := ParseArgs([]string{
		"-file", "abp8-p0.smv",
		"-algorithm", "traditional",
		"-trans-method", "partition",
		"-parallel", "4",
		"-ltl-extend-trans", "0,2",
		"-ltl-extend-trans", "5",
		"-ev", "1",
		"-ev", "3,4",
		"-v",
		"-op",
		"-ga",
		"-fd",
	})
	require.NoError(t, err)
	require.Equal(t, "abp8-p0.smv", args.File)
	require.Equal(t, AlgorithmTraditional, args.Algorithm)
	require.Equal(t, TransPartition, args.TransMethod)
	require.Equal(t, 4, args.Parallel)
	require.Equal(t, []int{0, 2, 5}, args.LtlExtendTrans)
	require.Equal(t, []int{1, 3, 4}, args.LtlExtendVars)
	require.True(t, args.Verbose)
	require.True(t, args.OldImpl)
	require.True(t, args.GeneralizeAutomata)
	require.True(t, args.FlattenDefine)
}

func TestParseArgsRejectsUnknownAlgorithm(t *testing.T) {
	_, err := ParseArgs([]string{"-file", "x.smv", "-algorithm", "bogus"})
	require.Error(t, err)
}

func TestParseArgsRejectsUnknownTransMethod(t *testing.T) {
	_, err := ParseArgs([]string{"-file", "x.smv", "-trans-method", "bogus"})
	require.Error(t, err)
}

func TestTransMethodToFsmbddMethod(t *testing.T) {
	require.Equal(t, fsmbdd.Monolithic, TransMonolithic.toFsmbddMethod())
	require.Equal(t, fsmbdd.Partition, TransPartition.toFsmbddMethod())
}
