// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package pb

import (
	proto "github.com/gogo/protobuf/proto"
	golang_proto "github.com/golang/protobuf/proto"
	context "golang.org/x/net/context"
	grpc "google.golang.org/grpc"
)

// JobRequest submits a job for execution. The definition is validated and
// stored as a metadata JOB object before anything runs.
type JobRequest struct {
	Tenant   string         `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	Job      *JobDefinition `protobuf:"bytes,2,opt,name=job" json:"job,omitempty"`
	JobAttrs []*TagUpdate   `protobuf:"bytes,3,rep,name=job_attrs,json=jobAttrs" json:"job_attrs,omitempty"`
}

func (m *JobRequest) Reset()         { *m = JobRequest{} }
func (m *JobRequest) String() string { return proto.CompactTextString(m) }
func (*JobRequest) ProtoMessage()    {}

func (m *JobRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *JobRequest) GetJob() *JobDefinition {
	if m != nil {
		return m.Job
	}
	return nil
}

func (m *JobRequest) GetJobAttrs() []*TagUpdate {
	if m != nil {
		return m.JobAttrs
	}
	return nil
}

// JobStatus reports where a job is in its lifecycle. JobId carries the
// metadata header of the JOB object.
type JobStatus struct {
	JobId         *TagHeader    `protobuf:"bytes,1,opt,name=job_id,json=jobId" json:"job_id,omitempty"`
	StatusCode    JobStatusCode `protobuf:"varint,2,opt,name=status_code,json=statusCode,proto3,enum=trac.metadata.JobStatusCode" json:"status_code,omitempty"`
	StatusMessage string        `protobuf:"bytes,3,opt,name=status_message,json=statusMessage,proto3" json:"status_message,omitempty"`
}

func (m *JobStatus) Reset()         { *m = JobStatus{} }
func (m *JobStatus) String() string { return proto.CompactTextString(m) }
func (*JobStatus) ProtoMessage()    {}

func (m *JobStatus) GetJobId() *TagHeader {
	if m != nil {
		return m.JobId
	}
	return nil
}

func (m *JobStatus) GetStatusCode() JobStatusCode {
	if m != nil {
		return m.StatusCode
	}
	return JobStatusCode_JOB_STATUS_NOT_SET
}

func (m *JobStatus) GetStatusMessage() string {
	if m != nil {
		return m.StatusMessage
	}
	return ""
}

type JobStatusRequest struct {
	Tenant   string       `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	Selector *TagSelector `protobuf:"bytes,2,opt,name=selector" json:"selector,omitempty"`
}

func (m *JobStatusRequest) Reset()         { *m = JobStatusRequest{} }
func (m *JobStatusRequest) String() string { return proto.CompactTextString(m) }
func (*JobStatusRequest) ProtoMessage()    {}

func (m *JobStatusRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *JobStatusRequest) GetSelector() *TagSelector {
	if m != nil {
		return m.Selector
	}
	return nil
}

type JobQueryRequest struct {
	Tenant   string          `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	Statuses []JobStatusCode `protobuf:"varint,2,rep,packed,name=statuses,enum=trac.metadata.JobStatusCode" json:"statuses,omitempty"`
}

func (m *JobQueryRequest) Reset()         { *m = JobQueryRequest{} }
func (m *JobQueryRequest) String() string { return proto.CompactTextString(m) }
func (*JobQueryRequest) ProtoMessage()    {}

func (m *JobQueryRequest) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *JobQueryRequest) GetStatuses() []JobStatusCode {
	if m != nil {
		return m.Statuses
	}
	return nil
}

type JobQueryResponse struct {
	Jobs []*JobStatus `protobuf:"bytes,1,rep,name=jobs" json:"jobs,omitempty"`
}

func (m *JobQueryResponse) Reset()         { *m = JobQueryResponse{} }
func (m *JobQueryResponse) String() string { return proto.CompactTextString(m) }
func (*JobQueryResponse) ProtoMessage()    {}

func (m *JobQueryResponse) GetJobs() []*JobStatus {
	if m != nil {
		return m.Jobs
	}
	return nil
}

// JobState is the durable record the orchestrator keeps per job. It lives
// in the job cache and is the single source of truth for crash recovery.
type JobState struct {
	Tenant          string                `protobuf:"bytes,1,opt,name=tenant,proto3" json:"tenant,omitempty"`
	JobId           *TagHeader            `protobuf:"bytes,2,opt,name=job_id,json=jobId" json:"job_id,omitempty"`
	JobDef          *JobDefinition        `protobuf:"bytes,3,opt,name=job_def,json=jobDef" json:"job_def,omitempty"`
	StatusCode      JobStatusCode         `protobuf:"varint,4,opt,name=status_code,json=statusCode,proto3,enum=trac.metadata.JobStatusCode" json:"status_code,omitempty"`
	StatusMessage   string                `protobuf:"bytes,5,opt,name=status_message,json=statusMessage,proto3" json:"status_message,omitempty"`
	ResolvedInputs  map[string]*TagHeader `protobuf:"bytes,6,rep,name=resolved_inputs,json=resolvedInputs" json:"resolved_inputs,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
	ExecutorState   []byte                `protobuf:"bytes,7,opt,name=executor_state,json=executorState,proto3" json:"executor_state,omitempty"`
	CancelRequested bool                  `protobuf:"varint,8,opt,name=cancel_requested,json=cancelRequested,proto3" json:"cancel_requested,omitempty"`
	RetryCount      int32                 `protobuf:"varint,9,opt,name=retry_count,json=retryCount,proto3" json:"retry_count,omitempty"`
	NextPollMicros  int64                 `protobuf:"varint,10,opt,name=next_poll_micros,json=nextPollMicros,proto3" json:"next_poll_micros,omitempty"`
	Outputs         map[string]*TagHeader `protobuf:"bytes,11,rep,name=outputs" json:"outputs,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value"`
}

func (m *JobState) Reset()         { *m = JobState{} }
func (m *JobState) String() string { return proto.CompactTextString(m) }
func (*JobState) ProtoMessage()    {}

func (m *JobState) GetTenant() string {
	if m != nil {
		return m.Tenant
	}
	return ""
}

func (m *JobState) GetJobId() *TagHeader {
	if m != nil {
		return m.JobId
	}
	return nil
}

func (m *JobState) GetJobDef() *JobDefinition {
	if m != nil {
		return m.JobDef
	}
	return nil
}

func (m *JobState) GetStatusCode() JobStatusCode {
	if m != nil {
		return m.StatusCode
	}
	return JobStatusCode_JOB_STATUS_NOT_SET
}

func (m *JobState) GetStatusMessage() string {
	if m != nil {
		return m.StatusMessage
	}
	return ""
}

func (m *JobState) GetResolvedInputs() map[string]*TagHeader {
	if m != nil {
		return m.ResolvedInputs
	}
	return nil
}

func (m *JobState) GetExecutorState() []byte {
	if m != nil {
		return m.ExecutorState
	}
	return nil
}

func (m *JobState) GetCancelRequested() bool {
	if m != nil {
		return m.CancelRequested
	}
	return false
}

func (m *JobState) GetRetryCount() int32 {
	if m != nil {
		return m.RetryCount
	}
	return 0
}

func (m *JobState) GetNextPollMicros() int64 {
	if m != nil {
		return m.NextPollMicros
	}
	return 0
}

func (m *JobState) GetOutputs() map[string]*TagHeader {
	if m != nil {
		return m.Outputs
	}
	return nil
}

func init() {
	proto.RegisterType((*JobRequest)(nil), "trac.orchestrator.JobRequest")
	golang_proto.RegisterType((*JobRequest)(nil), "trac.orchestrator.JobRequest")
	proto.RegisterType((*JobStatus)(nil), "trac.orchestrator.JobStatus")
	golang_proto.RegisterType((*JobStatus)(nil), "trac.orchestrator.JobStatus")
	proto.RegisterType((*JobStatusRequest)(nil), "trac.orchestrator.JobStatusRequest")
	golang_proto.RegisterType((*JobStatusRequest)(nil), "trac.orchestrator.JobStatusRequest")
	proto.RegisterType((*JobQueryRequest)(nil), "trac.orchestrator.JobQueryRequest")
	golang_proto.RegisterType((*JobQueryRequest)(nil), "trac.orchestrator.JobQueryRequest")
	proto.RegisterType((*JobQueryResponse)(nil), "trac.orchestrator.JobQueryResponse")
	golang_proto.RegisterType((*JobQueryResponse)(nil), "trac.orchestrator.JobQueryResponse")
	proto.RegisterType((*JobState)(nil), "trac.orchestrator.JobState")
	golang_proto.RegisterType((*JobState)(nil), "trac.orchestrator.JobState")
}

// OrchestratorClient is the client API for Orchestrator service.
type OrchestratorClient interface {
	SubmitJob(ctx context.Context, in *JobRequest, opts ...grpc.CallOption) (*JobStatus, error)
	CheckJob(ctx context.Context, in *JobStatusRequest, opts ...grpc.CallOption) (*JobStatus, error)
	QueryJobs(ctx context.Context, in *JobQueryRequest, opts ...grpc.CallOption) (*JobQueryResponse, error)
	CancelJob(ctx context.Context, in *JobStatusRequest, opts ...grpc.CallOption) (*JobStatus, error)
}

type orchestratorClient struct {
	cc *grpc.ClientConn
}

func NewOrchestratorClient(cc *grpc.ClientConn) OrchestratorClient {
	return &orchestratorClient{cc}
}

func (c *orchestratorClient) SubmitJob(ctx context.Context, in *JobRequest, opts ...grpc.CallOption) (*JobStatus, error) {
	out := new(JobStatus)
	err := c.cc.Invoke(ctx, "/trac.orchestrator.Orchestrator/SubmitJob", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orchestratorClient) CheckJob(ctx context.Context, in *JobStatusRequest, opts ...grpc.CallOption) (*JobStatus, error) {
	out := new(JobStatus)
	err := c.cc.Invoke(ctx, "/trac.orchestrator.Orchestrator/CheckJob", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orchestratorClient) QueryJobs(ctx context.Context, in *JobQueryRequest, opts ...grpc.CallOption) (*JobQueryResponse, error) {
	out := new(JobQueryResponse)
	err := c.cc.Invoke(ctx, "/trac.orchestrator.Orchestrator/QueryJobs", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orchestratorClient) CancelJob(ctx context.Context, in *JobStatusRequest, opts ...grpc.CallOption) (*JobStatus, error) {
	out := new(JobStatus)
	err := c.cc.Invoke(ctx, "/trac.orchestrator.Orchestrator/CancelJob", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OrchestratorServer is the server API for Orchestrator service.
type OrchestratorServer interface {
	SubmitJob(context.Context, *JobRequest) (*JobStatus, error)
	CheckJob(context.Context, *JobStatusRequest) (*JobStatus, error)
	QueryJobs(context.Context, *JobQueryRequest) (*JobQueryResponse, error)
	CancelJob(context.Context, *JobStatusRequest) (*JobStatus, error)
}

func RegisterOrchestratorServer(s *grpc.Server, srv OrchestratorServer) {
	s.RegisterService(&_Orchestrator_serviceDesc, srv)
}

func _Orchestrator_SubmitJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrchestratorServer).SubmitJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.orchestrator.Orchestrator/SubmitJob",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrchestratorServer).SubmitJob(ctx, req.(*JobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Orchestrator_CheckJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JobStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrchestratorServer).CheckJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.orchestrator.Orchestrator/CheckJob",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrchestratorServer).CheckJob(ctx, req.(*JobStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Orchestrator_QueryJobs_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JobQueryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrchestratorServer).QueryJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.orchestrator.Orchestrator/QueryJobs",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrchestratorServer).QueryJobs(ctx, req.(*JobQueryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Orchestrator_CancelJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JobStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrchestratorServer).CancelJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/trac.orchestrator.Orchestrator/CancelJob",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrchestratorServer).CancelJob(ctx, req.(*JobStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var _Orchestrator_serviceDesc = grpc.ServiceDesc{
	ServiceName: "trac.orchestrator.Orchestrator",
	HandlerType: (*OrchestratorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitJob",
			Handler:    _Orchestrator_SubmitJob_Handler,
		},
		{
			MethodName: "CheckJob",
			Handler:    _Orchestrator_CheckJob_Handler,
		},
		{
			MethodName: "QueryJobs",
			Handler:    _Orchestrator_QueryJobs_Handler,
		},
		{
			MethodName: "CancelJob",
			Handler:    _Orchestrator_CancelJob_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orchestrator.proto",
}
