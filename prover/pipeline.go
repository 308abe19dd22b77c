package prover

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/lesurp/state-machine/fsm"
)

// Pipeline compiles trace circuits and produces Groth16 proofs over BN254,
// the standard curve for Ethereum verification.
type Pipeline struct {
	curve ecc.ID
}

// NewPipeline creates a proving pipeline on the BN254 curve.
func NewPipeline() *Pipeline {
	return &Pipeline{curve: ecc.BN254}
}

// Proof bundles a Groth16 proof with everything needed to verify it.
type Proof struct {
	Proof         groth16.Proof
	VerifyingKey  groth16.VerifyingKey
	PublicWitness witness.Witness
}

// Prove compiles the circuit for the trace's length, runs trusted setup,
// and proves that the trace conforms to the machine's topology.
func (p *Pipeline) Prove(m *fsm.Machine, steps []Step) (*Proof, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("prover: empty trace")
	}

	circuit := NewTraceCircuit(m, len(steps))
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	assignment, err := Assign(m, steps)
	if err != nil {
		return nil, err
	}
	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness failed: %w", err)
	}

	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("proving failed: %w", err)
	}

	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness failed: %w", err)
	}

	return &Proof{Proof: proof, VerifyingKey: vk, PublicWitness: public}, nil
}

// Verify checks a proof against its public witness.
func (p *Pipeline) Verify(proof *Proof) error {
	return groth16.Verify(proof.Proof, proof.VerifyingKey, proof.PublicWitness)
}

// ExportVerifier compiles the circuit for traces of the given length and
// exports the Groth16 verifier contract as Solidity source.
func (p *Pipeline) ExportVerifier(m *fsm.Machine, steps int) (string, error) {
	circuit := NewTraceCircuit(m, steps)
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return "", fmt.Errorf("circuit compilation failed: %w", err)
	}

	_, vk, err := groth16.Setup(cs)
	if err != nil {
		return "", fmt.Errorf("setup failed: %w", err)
	}

	var buf bytes.Buffer
	if err := vk.ExportSolidity(&buf); err != nil {
		return "", fmt.Errorf("solidity export failed: %w", err)
	}
	return buf.String(), nil
}
