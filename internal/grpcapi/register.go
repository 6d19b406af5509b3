package grpcapi

import "google.golang.org/grpc"

// Register attaches the staking and auth query services to srv.
func Register(srv *grpc.Server) {
	srv.RegisterService(&StakingServiceDesc, StakingQueryServer{})
	srv.RegisterService(&AuthServiceDesc, AuthQueryServer{})
}
